package router_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/httpmethod"
	"github.com/cluedesc/clueapi-sub000/httpresponse"
	"github.com/cluedesc/clueapi-sub000/reqcontext"
	"github.com/cluedesc/clueapi-sub000/route"
	"github.com/cluedesc/clueapi-sub000/router"
)

func handlerNamed(name string) route.HandlerFunc {
	return func(ctx *reqcontext.Context) *httpresponse.Response {
		return httpresponse.Text(200, name)
	}
}

var _ = Describe("Tree", func() {
	It("routes a static path", func() {
		tr := router.New()
		Expect(tr.Insert(httpmethod.GET, "/health", handlerNamed("health"))).To(BeNil())

		h, params, err := tr.Lookup(httpmethod.GET, "/health")
		Expect(err).To(BeNil())
		Expect(h).ToNot(BeNil())
		Expect(params).To(BeEmpty())
	})

	It("captures a named dynamic segment", func() {
		tr := router.New()
		Expect(tr.Insert(httpmethod.GET, "/users/{id}", handlerNamed("user"))).To(BeNil())

		_, params, err := tr.Lookup(httpmethod.GET, "/users/42")
		Expect(err).To(BeNil())
		Expect(params).To(HaveKeyWithValue("id", "42"))
	})

	It("prefers a static sibling over a dynamic one", func() {
		tr := router.New()
		Expect(tr.Insert(httpmethod.GET, "/users/{id}", handlerNamed("user"))).To(BeNil())
		Expect(tr.Insert(httpmethod.GET, "/users/me", handlerNamed("me"))).To(BeNil())

		_, params, err := tr.Lookup(httpmethod.GET, "/users/me")
		Expect(err).To(BeNil())
		Expect(params).To(BeEmpty())
	})

	It("splits a static node on divergent insertion", func() {
		tr := router.New()
		Expect(tr.Insert(httpmethod.GET, "/team", handlerNamed("team"))).To(BeNil())
		Expect(tr.Insert(httpmethod.GET, "/teapot", handlerNamed("teapot"))).To(BeNil())

		_, _, err := tr.Lookup(httpmethod.GET, "/team")
		Expect(err).To(BeNil())

		_, _, err = tr.Lookup(httpmethod.GET, "/teapot")
		Expect(err).To(BeNil())
	})

	It("rejects registering the same method and path twice", func() {
		tr := router.New()
		Expect(tr.Insert(httpmethod.GET, "/x", handlerNamed("a"))).To(BeNil())
		Expect(tr.Insert(httpmethod.GET, "/x", handlerNamed("b"))).ToNot(BeNil())
	})

	It("rejects a second distinct parameter name at the same node", func() {
		tr := router.New()
		Expect(tr.Insert(httpmethod.GET, "/items/{id}", handlerNamed("a"))).To(BeNil())
		Expect(tr.Insert(httpmethod.GET, "/items/{slug}", handlerNamed("b"))).ToNot(BeNil())
	})

	It("allows the same parameter name at a different position in an unrelated subtree", func() {
		tr := router.New()
		Expect(tr.Insert(httpmethod.GET, "/a/{id}", handlerNamed("a"))).To(BeNil())
		Expect(tr.Insert(httpmethod.GET, "/b/x/{id}", handlerNamed("b"))).To(BeNil())
	})

	It("rejects a malformed parameter pattern", func() {
		tr := router.New()
		Expect(tr.Insert(httpmethod.GET, "/bad/{unterminated", handlerNamed("a"))).ToNot(BeNil())
	})

	It("normalizes a single trailing slash", func() {
		tr := router.New()
		Expect(tr.Insert(httpmethod.GET, "/path/", handlerNamed("a"))).To(BeNil())

		_, _, err := tr.Lookup(httpmethod.GET, "/path")
		Expect(err).To(BeNil())
	})

	It("reports no match for an unregistered method on a known path", func() {
		tr := router.New()
		Expect(tr.Insert(httpmethod.GET, "/x", handlerNamed("a"))).To(BeNil())

		_, _, err := tr.Lookup(httpmethod.POST, "/x")
		Expect(err).ToNot(BeNil())
	})
})
