package iopool_test

import (
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/iopool"
)

var _ = Describe("Pool", func() {
	It("distributes work round-robin across its workers", func() {
		p := iopool.New(4, 16, false)
		p.Start()
		defer p.Stop()

		Expect(p.Size()).To(Equal(4))

		var n atomic.Int64

		for i := 0; i < 40; i++ {
			iopool.Submit(p.Next(), func() { n.Add(1) })
		}

		Eventually(func() int64 { return n.Load() }).Should(BeEquivalentTo(40))
	})

	It("runs work submitted to the default worker", func() {
		p := iopool.New(2, 16, false)
		p.Start()
		defer p.Stop()

		done := make(chan struct{})
		iopool.Submit(p.Default(), func() { close(done) })

		Eventually(done).Should(BeClosed())
	})

	It("tolerates Stop being called more than once", func() {
		p := iopool.New(2, 16, false)
		p.Start()

		p.Stop()
		Expect(p.IsStopped()).To(BeTrue())
		Expect(func() { p.Stop() }).ToNot(Panic())
	})

	It("tolerates Start being called more than once without starting extra workers", func() {
		p := iopool.New(2, 16, false)
		p.Start()
		p.Start()
		defer p.Stop()

		var n atomic.Int64
		done := make(chan struct{})

		iopool.Submit(p.Default(), func() { n.Add(1); close(done) })

		Eventually(done).Should(BeClosed())
		Expect(n.Load()).To(BeEquivalentTo(1))
	})
})
