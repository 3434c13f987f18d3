package urlencoding_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestURLEncoding(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "urlencoding suite")
}
