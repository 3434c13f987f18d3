package httpresponse_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestHTTPResponse(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "httpresponse suite")
}
