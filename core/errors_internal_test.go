package core

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/flowmatic/instr"
	"github.com/sarchlab/flowmatic/program"
	"github.com/sarchlab/flowmatic/record"
)

var _ = Describe("classify", func() {
	DescribeTable("kinds",
		func(err error, want Kind) {
			Expect(classify(err)).To(Equal(want))
		},
		Entry("unknown keyword", &instr.UnknownInstructionError{Keyword: "X"}, KindUnknownInstruction),
		Entry("malformed", program.Malformed("MOVE", "bad"), KindSyntax),
		Entry("division", fmt.Errorf("%w: x", ErrDivideByZero), KindArithmetic),
		Entry("not numeric", ErrNotNumeric, KindArithmetic),
		Entry("storage", fmt.Errorf("%w: %w", ErrIO, errors.New("disk")), KindIO),
		Entry("step limit", ErrStepLimit, KindInterrupted),
		Entry("cancelled", context.Canceled, KindInterrupted),
		Entry("missing record", record.ErrNoCurrentRecord, KindReference),
		Entry("missing operation", ErrNoSuchOperation, KindReference),
	)

	It("should name the kind and place of a fault", func() {
		f := &Fault{Kind: KindReference, Op: 3, Command: "JUMP TO OPERATION 9", Err: ErrNoSuchOperation}

		Expect(f.Error()).To(Equal(`ReferenceError at operation (3) in "JUMP TO OPERATION 9": no such operation`))
	})
})

var _ = Describe("render", func() {
	It("should truncate integers toward zero", func() {
		Expect(render(-1.5, true).String()).To(Equal("-1"))
		Expect(render(5.9, true).String()).To(Equal("5"))
	})

	It("should keep a decimal point on floats", func() {
		Expect(render(5, false).String()).To(Equal("5.0"))
	})
})
