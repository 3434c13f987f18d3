package httpcookie_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestHTTPCookie(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "httpcookie suite")
}
