package instr_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/flowmatic/instr"
)

var _ = Describe("Split", func() {
	It("should split on semicolons", func() {
		Expect(instr.Split("WRITE-ITEM A ; JUMP TO OPERATION 1 .")).
			To(Equal([]string{"WRITE-ITEM A", "JUMP TO OPERATION 1"}))
	})

	It("should keep standalone conditionals as their own sub-commands", func() {
		Expect(instr.Split("READ-ITEM A ; IF END OF DATA GO TO OPERATION 3 .")).
			To(Equal([]string{"READ-ITEM A", "IF END OF DATA GO TO OPERATION 3"}))
		Expect(instr.Split("IF GREATER GO TO OPERATION 2 ; OTHERWISE GO TO OPERATION 4 .")).
			To(Equal([]string{"IF GREATER GO TO OPERATION 2", "OTHERWISE GO TO OPERATION 4"}))
	})

	It("should keep COMPARE and TEST atomic", func() {
		cmp := "COMPARE PRODUCT-NO (A) WITH PRODUCT-NO (B) ; IF GREATER GO TO OPERATION 10 ; " +
			"IF EQUAL GO TO OPERATION 5 ; OTHERWISE GO TO OPERATION 2"
		Expect(instr.Split(cmp + " .")).To(Equal([]string{cmp}))

		test := "TEST PRICE (A) AGAINST 100 ; IF GREATER GO TO OPERATION 9 ; OTHERWISE GO TO OPERATION 4"
		Expect(instr.Split(test + " .")).To(Equal([]string{test}))
	})

	It("should only group on the leading keyword", func() {
		Expect(instr.Split("TESTING A ; STOP .")).To(Equal([]string{"TESTING A", "STOP"}))
		Expect(instr.Split("MOVE X (A) TO X (B) ; COMPARE X (A) WITH X (B) ; IF EQUAL GO TO OPERATION 1 .")).
			To(HaveLen(3))
	})

	It("should strip only one trailing period and drop empty segments", func() {
		Expect(instr.Split("STOP .")).To(Equal([]string{"STOP"}))
		Expect(instr.Split("REWIND B ;; ; STOP.")).To(Equal([]string{"REWIND B", "STOP"}))
		Expect(instr.Split(" . ")).To(BeEmpty())
	})
})
