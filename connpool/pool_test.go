package connpool_test

import (
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/connpool"
)

var _ = Describe("Pool", func() {
	It("hands out clients bound to the given conn and returns them idle", func() {
		p := connpool.New(1, 64)

		server, client := net.Pipe()
		defer client.Close()

		c, err := p.Acquire(server)
		Expect(err).To(BeNil())
		Expect(c.State()).To(Equal(connpool.Active))
		Expect(c.Conn).To(Equal(server))

		p.Release(c)

		Expect(c.State()).To(Equal(connpool.Idle))
		Expect(c.Conn).To(BeNil())
		Expect(c.Buffer).To(HaveLen(0))
	})

	It("fails closed once every client is active", func() {
		p := connpool.New(1, 64)

		server, client := net.Pipe()
		defer client.Close()

		_, err := p.Acquire(server)
		Expect(err).To(BeNil())

		_, err = p.Acquire(server)
		Expect(err).ToNot(BeNil())
	})

	It("lets a released client be acquired again", func() {
		p := connpool.New(1, 64)

		server1, client1 := net.Pipe()
		defer client1.Close()

		c, err := p.Acquire(server1)
		Expect(err).To(BeNil())

		p.Release(c)

		server2, client2 := net.Pipe()
		defer client2.Close()

		c2, err := p.Acquire(server2)
		Expect(err).To(BeNil())
		Expect(c2).To(Equal(c))
		Expect(c2.Conn).To(Equal(server2))
	})

	It("rejects acquisition once closed", func() {
		p := connpool.New(1, 64)
		p.Close()

		Expect(p.IsClosed()).To(BeTrue())

		server, client := net.Pipe()
		defer client.Close()
		defer server.Close()

		_, err := p.Acquire(server)
		Expect(err).ToNot(BeNil())
	})
})
