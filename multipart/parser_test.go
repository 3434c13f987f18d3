package multipart_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/multipart"
)

func buildBody(boundary string, fileBody string) string {
	var b strings.Builder

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Disposition: form-data; name=\"title\"\r\n\r\n")
	b.WriteString("hello world")
	b.WriteString("\r\n--" + boundary + "\r\n")
	b.WriteString("Content-Disposition: form-data; name=\"upload\"; filename=\"a b?.txt\"\r\n")
	b.WriteString("Content-Type: text/plain\r\n\r\n")
	b.WriteString(fileBody)
	b.WriteString("\r\n--" + boundary + "--\r\n")

	return b.String()
}

var _ = Describe("ParseBytes / ParseFile", func() {
	It("produce equal field maps and file contents regardless of source", func() {
		boundary := "XYZBoundary"
		body := buildBody(boundary, "file contents here")

		cfg := multipart.Default().WithBoundary(boundary)

		memRes, merr := multipart.ParseBytes([]byte(body), cfg)
		Expect(merr).To(BeNil())

		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "body.bin")
		Expect(os.WriteFile(path, []byte(body), 0o600)).To(Succeed())

		cfg.ChunkSize = 7 // force many small refills to exercise window growth
		fileRes, ferr := multipart.ParseFile(path, cfg)
		Expect(ferr).To(BeNil())

		Expect(memRes.Fields).To(Equal(fileRes.Fields))
		Expect(memRes.Fields["title"]).To(Equal("hello world"))

		memFile := memRes.Files["upload"]
		fileFile := fileRes.Files["upload"]
		Expect(memFile).ToNot(BeNil())
		Expect(fileFile).ToNot(BeNil())

		memBytes, _ := readAll(memFile)
		fileBytes, _ := readAll(fileFile)
		Expect(memBytes).To(Equal(fileBytes))
		Expect(string(memBytes)).To(Equal("file contents here"))

		Expect(memFile.Filename).To(Equal("a_b_.txt"))
	})

	It("spills a file exceeding the per-file threshold to disk and removes it on Close", func() {
		boundary := "SpillBoundary"
		payload := strings.Repeat("x", 1024)
		body := buildBody(boundary, payload)

		cfg := multipart.Default().WithBoundary(boundary)
		cfg.MaxFileSizeInMemory = 16
		cfg.MaxFilesSizeInMemory = 16
		cfg.TempDir = GinkgoT().TempDir()

		res, err := multipart.ParseBytes([]byte(body), cfg)
		Expect(err).To(BeNil())

		f := res.Files["upload"]
		Expect(f.IsSpilled()).To(BeTrue())
		Expect(f.TempPath).ToNot(BeEmpty())

		_, statErr := os.Stat(f.TempPath)
		Expect(statErr).To(BeNil())

		Expect(f.Close()).To(Succeed())

		_, statErr = os.Stat(f.TempPath)
		Expect(os.IsNotExist(statErr)).To(BeTrue())
	})
})

var _ = Describe("SanitizeFilename", func() {
	It("keeps only ASCII alphanumerics, underscore, dash and dot", func() {
		Expect(multipart.SanitizeFilename("report (final).pdf")).To(Equal("report__final_.pdf"))
	})

	It("is idempotent", func() {
		once := multipart.SanitizeFilename("wëird näme.txt")
		twice := multipart.SanitizeFilename(once)
		Expect(twice).To(Equal(once))
	})

	It("replaces empty, '.' and '..' with 'untitled'", func() {
		Expect(multipart.SanitizeFilename("")).To(Equal("untitled"))
		Expect(multipart.SanitizeFilename(".")).To(Equal("untitled"))
		Expect(multipart.SanitizeFilename("..")).To(Equal("untitled"))
	})
})

func readAll(f *multipart.File) ([]byte, error) {
	if !f.IsSpilled() {
		return f.Bytes, nil
	}

	return os.ReadFile(f.TempPath)
}
