package reqcontext_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestReqContext(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "reqcontext suite")
}
