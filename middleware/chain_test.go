package middleware_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/httpresponse"
	"github.com/cluedesc/clueapi-sub000/middleware"
	"github.com/cluedesc/clueapi-sub000/reqcontext"
	"github.com/cluedesc/clueapi-sub000/route"
)

func tagger(tag string) middleware.Middleware {
	return func(next route.HandlerFunc) route.HandlerFunc {
		return func(ctx *reqcontext.Context) *httpresponse.Response {
			resp := next(ctx)
			resp.Headers["X-Order"] += tag
			return resp
		}
	}
}

var _ = Describe("Chain", func() {
	It("applies entries outermost-first around the core", func() {
		core := route.CoreFunc(func(ctx *reqcontext.Context) *httpresponse.Response {
			return httpresponse.Text(200, "ok")
		})

		c := middleware.Chain{tagger("a"), tagger("b")}
		resp := c.Compose(core)(nil)

		Expect(resp.Headers["X-Order"]).To(Equal("ba"))
	})

	It("panics at compose time when core is nil", func() {
		Expect(func() {
			middleware.Chain{}.Compose(nil)
		}).To(Panic())
	})
})
