package conntask_test

import (
	"bufio"
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/connpool"
	"github.com/cluedesc/clueapi-sub000/conntask"
	"github.com/cluedesc/clueapi-sub000/httprequest"
	"github.com/cluedesc/clueapi-sub000/httpresponse"
	"github.com/cluedesc/clueapi-sub000/multipart"
	"github.com/cluedesc/clueapi-sub000/reqcontext"
)

var _ = Describe("Run", func() {
	It("services one request then closes when keep-alive is off", func() {
		server, client := net.Pipe()

		pool := connpool.New(1, 4<<10)
		c, aerr := pool.Acquire(server)
		Expect(aerr).To(BeNil())

		reader := httprequest.New(httprequest.Config{MaxHeaderBytes: 4096, MaxBodyBytes: 1 << 20, ChunkSize: 4096})
		writer := httpresponse.New(httpresponse.Config{})

		core := func(ctx *reqcontext.Context) *httpresponse.Response {
			return httpresponse.Text(200, "ok")
		}

		first := true
		running := func() bool {
			ok := first
			first = false
			return ok
		}

		done := make(chan struct{})

		go func() {
			defer close(done)
			conntask.Run(c, pool, conntask.New(reader, writer, core, conntask.Config{Multipart: multipart.Default()}, nil), running)
		}()

		_, _ = client.Write([]byte("GET /x HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"))

		br := bufio.NewReader(client)
		status, rerr := br.ReadString('\n')
		Expect(rerr).To(BeNil())
		Expect(status).To(ContainSubstring("200"))

		Eventually(done).Should(BeClosed())
		Expect(c.State()).To(Equal(connpool.Idle))

		_ = client.Close()
	})

	It("stops immediately when running reports false up front", func() {
		server, client := net.Pipe()
		defer client.Close()

		pool := connpool.New(1, 4<<10)
		c, _ := pool.Acquire(server)

		reader := httprequest.New(httprequest.Config{MaxHeaderBytes: 4096, MaxBodyBytes: 1 << 20})
		writer := httpresponse.New(httpresponse.Config{})

		core := func(ctx *reqcontext.Context) *httpresponse.Response {
			return httpresponse.Text(200, "unused")
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			conntask.Run(c, pool, conntask.New(reader, writer, core, conntask.Config{Multipart: multipart.Default()}, nil), func() bool { return false })
		}()

		Eventually(done).Should(BeClosed())
	})
})
