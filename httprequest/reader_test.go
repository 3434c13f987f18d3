package httprequest_test

import (
	"bufio"
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/httpmethod"
	"github.com/cluedesc/clueapi-sub000/httprequest"
)

func readFrom(raw string, cfg httprequest.Config) (*httprequest.Request, httprequest.ErrCode) {
	server, client := net.Pipe()
	defer server.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		client.Write([]byte(raw))
		client.Close()
	}()

	r := httprequest.New(cfg)
	req, code := r.Read(bufio.NewReader(server), server)

	<-done

	return req, code
}

var _ = Describe("Reader", func() {
	It("parses a simple GET request with headers", func() {
		raw := "GET /hello?x=1 HTTP/1.1\r\nHost: example.com\r\nConnection: close\r\n\r\n"

		req, code := readFrom(raw, httprequest.Config{MaxHeaderBytes: 4096})

		Expect(code).To(Equal(httprequest.ErrNone))
		Expect(req.Method).To(Equal(httpmethod.GET))
		Expect(req.Path).To(Equal("/hello"))
		Expect(req.Query).To(Equal("x=1"))
		Expect(req.KeepAlive()).To(BeFalse())
	})

	It("reads a fixed-length body for a non-safe method", func() {
		raw := "POST /echo HTTP/1.1\r\nHost: x\r\nContent-Length: 21\r\nConnection: close\r\n\r\nthis is the post body"

		req, code := readFrom(raw, httprequest.Config{MaxHeaderBytes: 4096, MaxBodyBytes: 1 << 20})

		Expect(code).To(Equal(httprequest.ErrNone))
		Expect(string(req.Body)).To(Equal("this is the post body"))
	})

	It("rejects a body exceeding the configured maximum", func() {
		raw := "POST /echo HTTP/1.1\r\nHost: x\r\nContent-Length: 22\r\nConnection: close\r\n\r\nthis is the post body"

		_, code := readFrom(raw, httprequest.Config{MaxHeaderBytes: 4096, MaxBodyBytes: 4})

		Expect(code).To(Equal(httprequest.ErrPayloadTooLarge))
	})

	It("rejects a non-numeric Content-Length instead of treating the request as bodyless", func() {
		raw := "POST /echo HTTP/1.1\r\nHost: x\r\nContent-Length: abc\r\nConnection: close\r\n\r\nthis is the post body"

		_, code := readFrom(raw, httprequest.Config{MaxHeaderBytes: 4096, MaxBodyBytes: 1 << 20})

		Expect(code).To(Equal(httprequest.ErrBadRequest))
	})

	It("rejects a non-numeric Content-Length on a multipart request the same way", func() {
		raw := "POST /upload HTTP/1.1\r\nHost: x\r\nContent-Type: multipart/form-data; boundary=X\r\n" +
			"Content-Length: abc\r\nConnection: close\r\n\r\n--X--\r\n"

		_, code := readFrom(raw, httprequest.Config{MaxHeaderBytes: 4096, MaxBodyBytes: 1 << 20})

		Expect(code).To(Equal(httprequest.ErrBadRequest))
	})

	It("rejects a malformed request line", func() {
		raw := "NOT A REQUEST LINE\r\n\r\n"

		_, code := readFrom(raw, httprequest.Config{MaxHeaderBytes: 4096})

		Expect(code).To(Equal(httprequest.ErrBadRequest))
	})

	It("flags an upgrade request instead of servicing it", func() {
		raw := "GET /ws HTTP/1.1\r\nHost: x\r\nUpgrade: websocket\r\nConnection: Upgrade\r\n\r\n"

		_, code := readFrom(raw, httprequest.Config{MaxHeaderBytes: 4096})

		Expect(code).To(Equal(httprequest.ErrUpgradeRejected))
	})

	It("defaults to keep-alive when the Connection header is absent", func() {
		raw := "GET /hello HTTP/1.1\r\nHost: x\r\n\r\n"

		req, code := readFrom(raw, httprequest.Config{MaxHeaderBytes: 4096})

		Expect(code).To(Equal(httprequest.ErrNone))
		Expect(req.KeepAlive()).To(BeTrue())
	})
})
