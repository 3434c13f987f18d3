package accept_test

import (
	"context"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/accept"
	"github.com/cluedesc/clueapi-sub000/config"
	"github.com/cluedesc/clueapi-sub000/connpool"
	"github.com/cluedesc/clueapi-sub000/iopool"
)

var _ = Describe("ListenerCount", func() {
	It("falls back to a single listener when reuse_port is off", func() {
		Expect(accept.ListenerCount(8, false)).To(Equal(1))
	})

	It("clamps into [1, max(1, workers/2)] when reuse_port is supported", func() {
		n := accept.ListenerCount(8, true)
		Expect(n).To(BeNumerically(">=", 1))
		Expect(n).To(BeNumerically("<=", 4))
	})
})

var _ = Describe("Set", func() {
	It("accepts a connection and hands it to the handler bound to a pooled client", func() {
		io := iopool.New(2, 16, false)
		io.Start()
		defer io.Stop()

		pool := connpool.New(2, 256)

		s, err := accept.New("127.0.0.1:0", config.SocketConfig{NoDelay: true}, 2, pool, io, nil)
		Expect(err).To(BeNil())

		addr := s.Addr()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		got := make(chan *connpool.Client, 1)

		go s.Serve(ctx, func(c *connpool.Client) {
			got <- c
			pool.Release(c)
		})

		conn, derr := net.DialTimeout("tcp", addr, time.Second)
		Expect(derr).To(BeNil())
		defer conn.Close()

		Eventually(got).Should(Receive())
	})
})
