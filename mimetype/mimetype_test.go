package mimetype_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/mimetype"
)

var _ = Describe("ByExtension", func() {
	It("resolves a well-known extension through the standard table", func() {
		Expect(mimetype.ByExtension("report.json")).To(Equal("application/json"))
	})

	It("resolves .wasm to application/wasm", func() {
		Expect(mimetype.ByExtension("bundle.wasm")).To(Equal("application/wasm"))
	})

	It("falls back to application/octet-stream for an unknown or missing extension", func() {
		Expect(mimetype.ByExtension("data.unknownext")).To(Equal("application/octet-stream"))
		Expect(mimetype.ByExtension("noext")).To(Equal("application/octet-stream"))
	})

	It("is case-insensitive on the extension", func() {
		Expect(mimetype.ByExtension("IMAGE.WEBP")).To(Equal("image/webp"))
	})
})
