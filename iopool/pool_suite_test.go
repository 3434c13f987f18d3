package iopool_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIOPool(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "iopool suite")
}
