package httprequest_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestHTTPRequest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "httprequest suite")
}
