package connpool_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConnPool(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "connpool suite")
}
