package urlencoding_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/urlencoding"
)

var _ = Describe("QueryUnescape", func() {
	It("decodes '+' as space and %xx as the matching byte, case-insensitively", func() {
		Expect(urlencoding.QueryUnescape("a+b%2Bc%2bd")).To(Equal("a b+c+d"))
	})

	It("leaves an invalid %-escape untouched instead of erroring", func() {
		Expect(urlencoding.QueryUnescape("100%-off%2")).To(Equal("100%-off%2"))
	})

	It("leaves a %-escape at the very end of the string untouched", func() {
		Expect(urlencoding.QueryUnescape("trailing%")).To(Equal("trailing%"))
	})
})

var _ = Describe("ParseQuery", func() {
	It("splits and decodes key/value pairs, keeping the last occurrence of a repeated key", func() {
		got := urlencoding.ParseQuery("a=1&b=hello+world&a=2&flag")

		Expect(got).To(Equal(map[string]string{
			"a":    "2",
			"b":    "hello world",
			"flag": "",
		}))
	})

	It("returns an empty map for an empty query string", func() {
		Expect(urlencoding.ParseQuery("")).To(Equal(map[string]string{}))
	})
})
