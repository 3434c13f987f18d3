package httpcookie_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/httpcookie"
)

var _ = Describe("Cookie", func() {
	It("round-trips a parsed Cookie header back into name/value pairs", func() {
		parsed := httpcookie.ParseCookieHeader(`session=abc123; theme="dark"; =broken; noeq`)

		Expect(parsed).To(Equal(map[string]string{
			"session": "abc123",
			"theme":   "dark",
		}))
	})

	It("renders a Set-Cookie header with every populated attribute", func() {
		c := &httpcookie.Cookie{
			Name:     "session",
			Value:    "abc123",
			Path:     "/",
			MaxAge:   3600,
			Secure:   true,
			HTTPOnly: true,
			SameSite: httpcookie.SameSiteStrict,
		}

		Expect(c.Validate()).To(BeNil())
		s := c.String()

		Expect(s).To(ContainSubstring("session=abc123"))
		Expect(s).To(ContainSubstring("Path=/"))
		Expect(s).To(ContainSubstring("Max-Age=3600"))
		Expect(s).To(ContainSubstring("Secure"))
		Expect(s).To(ContainSubstring("HttpOnly"))
		Expect(s).To(ContainSubstring("SameSite=Strict"))
	})

	It("rejects a __Host- cookie that isn't Secure, Path=/, and Domain-less at validation time", func() {
		c := &httpcookie.Cookie{Name: "__Host-session", Value: "x", Secure: true, Path: "/", Domain: "example.com"}
		Expect(c.Validate()).ToNot(BeNil())

		c = &httpcookie.Cookie{Name: "__Host-session", Value: "x", Secure: false, Path: "/"}
		Expect(c.Validate()).ToNot(BeNil())

		c = &httpcookie.Cookie{Name: "__Host-session", Value: "x", Secure: true, Path: "/"}
		Expect(c.Validate()).To(BeNil())
	})

	It("rejects a __Secure- cookie that isn't Secure", func() {
		c := &httpcookie.Cookie{Name: "__Secure-session", Value: "x", Secure: false}
		Expect(c.Validate()).ToNot(BeNil())

		c = &httpcookie.Cookie{Name: "__Secure-session", Value: "x", Secure: true}
		Expect(c.Validate()).To(BeNil())
	})

	It("rejects an empty cookie name", func() {
		c := &httpcookie.Cookie{Name: "", Value: "x"}
		Expect(c.Validate()).ToNot(BeNil())
	})

	It("quotes a value containing bytes outside the cookie-octet set", func() {
		c := &httpcookie.Cookie{Name: "n", Value: "has space"}
		Expect(c.Validate()).To(BeNil())
		Expect(c.String()).To(ContainSubstring(`n="has space"`))
	})
})
