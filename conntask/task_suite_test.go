package conntask_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConnTask(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "conntask suite")
}
