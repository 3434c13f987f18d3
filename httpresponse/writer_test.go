package httpresponse_test

import (
	"bufio"
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/httpresponse"
)

func write(w *httpresponse.Writer, resp *httpresponse.Response, keepAlive bool) (string, bool) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)

	shouldClose, err := w.Write(bw, resp, keepAlive)
	Expect(err).To(BeNil())

	return buf.String(), shouldClose
}

var _ = Describe("Writer", func() {
	var w *httpresponse.Writer

	BeforeEach(func() {
		w = httpresponse.New(httpresponse.Config{KeepAliveTimeoutSeconds: 5})
	})

	It("writes a buffered response with Content-Length and no chunk framing", func() {
		out, shouldClose := write(w, httpresponse.Text(200, "hello"), true)

		Expect(out).To(ContainSubstring("HTTP/1.1 200 OK\r\n"))
		Expect(out).To(ContainSubstring("Content-Length: 5\r\n"))
		Expect(out).To(HaveSuffix("hello"))
		Expect(shouldClose).To(BeFalse())
	})

	It("closes the connection when keep-alive was not requested", func() {
		_, shouldClose := write(w, httpresponse.Text(200, "x"), false)
		Expect(shouldClose).To(BeTrue())
	})

	It("terminates a chunked response with exactly one 0\\r\\n\\r\\n even when no chunk is written", func() {
		resp := httpresponse.Chunked(200, func(cw httpresponse.ChunkWriter) error {
			return nil
		})

		out, _ := write(w, resp, true)

		Expect(out).To(ContainSubstring("Transfer-Encoding: chunked\r\n"))
		Expect(strings.Count(out, "0\r\n\r\n")).To(Equal(1))
		Expect(out).To(HaveSuffix("0\r\n\r\n"))
	})

	It("terminates a chunked response with exactly one trailer after several chunks", func() {
		resp := httpresponse.Chunked(200, func(cw httpresponse.ChunkWriter) error {
			for _, chunk := range []string{"chunk1-", "part2-", "final"} {
				if err := cw.WriteChunk([]byte(chunk)); err != nil {
					return err
				}
			}

			return nil
		})

		out, _ := write(w, resp, true)

		Expect(strings.Count(out, "0\r\n\r\n")).To(Equal(1))
		Expect(out).To(ContainSubstring("7\r\nchunk1-\r\n"))
		Expect(out).To(HaveSuffix("0\r\n\r\n"))
	})

	It("substitutes the configured error body when the response never set a status", func() {
		resp := &httpresponse.Response{Mode: httpresponse.ModeBuffered, Headers: map[string]string{}}

		out, _ := write(w, resp, true)
		Expect(out).To(ContainSubstring("HTTP/1.1 500 Internal Server Error\r\n"))
	})
})
