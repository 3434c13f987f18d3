package reqcontext_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/httpmethod"
	"github.com/cluedesc/clueapi-sub000/httprequest"
	"github.com/cluedesc/clueapi-sub000/logging"
	"github.com/cluedesc/clueapi-sub000/multipart"
	"github.com/cluedesc/clueapi-sub000/reqcontext"
)

var _ = Describe("Build", func() {
	It("leaves Fields/Files empty for a plain request", func() {
		req := &httprequest.Request{Method: httpmethod.GET, Path: "/hello"}

		ctx := reqcontext.Build(req, map[string]string{"id": "123"}, multipart.Default(), logging.Discard())
		defer ctx.Close()

		Expect(ctx.Params).To(Equal(map[string]string{"id": "123"}))
		Expect(ctx.Fields).To(BeEmpty())
		Expect(ctx.Files).To(BeEmpty())
	})

	It("parses an in-memory multipart body into Fields and Files", func() {
		boundary := "ReqCtxBoundary"

		var b strings.Builder
		b.WriteString("--" + boundary + "\r\n")
		b.WriteString("Content-Disposition: form-data; name=\"title\"\r\n\r\n")
		b.WriteString("hello")
		b.WriteString("\r\n--" + boundary + "--\r\n")

		req := &httprequest.Request{
			Method:  httpmethod.POST,
			Path:    "/upload",
			Headers: httprequest.Header{"content-type": "multipart/form-data; boundary=" + boundary},
			Body:    []byte(b.String()),
		}

		ctx := reqcontext.Build(req, map[string]string{}, multipart.Default(), logging.Discard())
		defer ctx.Close()

		Expect(ctx.Fields).To(Equal(map[string]string{"title": "hello"}))
	})
})
