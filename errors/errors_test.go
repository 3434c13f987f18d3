package errors_test

import (
	liberr "github.com/cluedesc/clueapi-sub000/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const testCode liberr.CodeError = liberr.MinAvailable + 1

var _ = Describe("CodeError", func() {
	BeforeEach(func() {
		liberr.RegisterIdFctMessage(testCode, func(code liberr.CodeError) string {
			if code == testCode {
				return "synthetic failure"
			}
			return ""
		})
	})

	It("builds an Error carrying its registered message", func() {
		err := testCode.Error(nil)
		Expect(err.Code()).To(Equal(testCode.Uint16()))
		Expect(err.StringError()).To(Equal("synthetic failure"))
	})

	It("chains parents without flattening their codes away", func() {
		parent := liberr.UnknownError.Error(nil)
		err := testCode.Error(parent)
		Expect(err.HasParent()).To(BeTrue())
		Expect(err.GetParentCode()).To(ContainElements(testCode, liberr.UnknownError))
	})

	It("IfError returns nil when every candidate is nil", func() {
		Expect(liberr.IfError(uint16(testCode), "x", nil, nil)).To(BeNil())
	})

	It("IfError returns a real Error when any candidate is non-nil", func() {
		err := liberr.IfError(uint16(testCode), "x", nil, liberr.UnknownError.Error(nil))
		Expect(err).ToNot(BeNil())
	})
})
