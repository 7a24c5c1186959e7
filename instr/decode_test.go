package instr_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/flowmatic/instr"
	"github.com/sarchlab/flowmatic/program"
)

func op(n int) *program.OpNumber {
	o := program.OpNumber(n)
	return &o
}

var _ = Describe("Decode", func() {
	DescribeTable("well-formed sub-commands",
		func(cmd string, expected instr.Inst) {
			inst, err := instr.Decode(cmd)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst).To(Equal(expected))
		},
		Entry("INPUT", "INPUT INVENTORY FILE-A PRICE FILE-B",
			instr.Input{Files: []instr.FileSpec{{Name: "INVENTORY", Letter: "A"}, {Name: "PRICE", Letter: "B"}}}),
		Entry("OUTPUT", "OUTPUT PRICED-INV FILE-C",
			instr.Output{Files: []instr.FileSpec{{Name: "PRICED-INV", Letter: "C"}}}),
		Entry("OUTPUT with HSP tail", "OUTPUT PRICED-INV FILE-C UNPRICED-INV FILE-D ; HSP D",
			instr.Output{
				Files:   []instr.FileSpec{{Name: "PRICED-INV", Letter: "C"}, {Name: "UNPRICED-INV", Letter: "D"}},
				Printer: "D",
			}),
		Entry("HSP", "HSP D", instr.HSP{File: "D"}),
		Entry("TRANSFER", "TRANSFER A TO D", instr.Transfer{From: "A", To: "D"}),
		Entry("TRANSFER with parentheses", "TRANSFER (A) TO (D)", instr.Transfer{From: "A", To: "D"}),
		Entry("COMPARE",
			"COMPARE PRODUCT-NO (A) WITH PRODUCT-NO (B) ; IF GREATER GO TO OPERATION 10 ; "+
				"IF EQUAL GO TO OPERATION 5 ; OTHERWISE GO TO OPERATION 2",
			instr.Compare{
				Left:  instr.FieldRef{Field: "PRODUCT-NO", File: "A"},
				Right: instr.FieldRef{Field: "PRODUCT-NO", File: "B"},
				Clauses: []instr.Clause{
					{Cond: instr.CondGreater, Target: 10},
					{Cond: instr.CondEqual, Target: 5},
					{Cond: instr.CondOtherwise, Target: 2},
				},
			}),
		Entry("READ-ITEM", "READ-ITEM A", instr.ReadItem{File: "A"}),
		Entry("READ-ITEM with end-of-data clause", "READ-ITEM A ; IF END OF DATA GO TO OPERATION 14",
			instr.ReadItem{File: "A", EndOfData: op(14)}),
		Entry("WRITE-ITEM", "WRITE-ITEM D", instr.WriteItem{File: "D"}),
		Entry("MOVE", "MOVE UNIT-PRICE (B) TO UNIT-PRICE (C)",
			instr.Move{
				From: instr.FieldRef{Field: "UNIT-PRICE", File: "B"},
				To:   instr.FieldRef{Field: "UNIT-PRICE", File: "C"},
			}),
		Entry("JUMP", "JUMP TO OPERATION 8", instr.Jump{Target: 8}),
		Entry("STOP", "STOP", instr.Stop{}),
		Entry("TEST",
			"TEST PRODUCT-NO (B) AGAINST ZZZZZZZZZZZZ ; IF EQUAL GO TO OPERATION 16 ; OTHERWISE GO TO OPERATION 15",
			instr.Test{
				Field:   instr.FieldRef{Field: "PRODUCT-NO", File: "B"},
				Literal: "ZZZZZZZZZZZZ",
				Clauses: []instr.Clause{
					{Cond: instr.CondEqual, Target: 16},
					{Cond: instr.CondOtherwise, Target: 15},
				},
			}),
		Entry("SET", "SET OPERATION 9 TO GO TO OPERATION 2", instr.Set{From: 9, To: 2}),
		Entry("REWIND", "REWIND B", instr.Rewind{File: "B"}),
		Entry("CLOSE-OUT", "CLOSE-OUT FILES C , D", instr.CloseOut{Files: []string{"C", "D"}}),
		Entry("CLOSE-OUT single file", "CLOSE-OUT FILE C", instr.CloseOut{Files: []string{"C"}}),
		Entry("ADD with multi-word field", "ADD QUANTITY (A) TO STORED QUANTITY (W)",
			instr.Add{
				From: instr.FieldRef{Field: "QUANTITY", File: "A"},
				To:   instr.FieldRef{Field: "STORED QUANTITY", File: "W"},
			}),
		Entry("SUBTRACT", "SUBTRACT X (A) FROM Y (B)",
			instr.Subtract{
				Amount: instr.FieldRef{Field: "X", File: "A"},
				From:   instr.FieldRef{Field: "Y", File: "B"},
			}),
		Entry("MULTIPLY", "MULTIPLY QUANTITY (C) BY UNIT-PRICE (C) GIVING EXTENDED-PRICE (C)",
			instr.Multiply{
				Left:   instr.FieldRef{Field: "QUANTITY", File: "C"},
				Right:  instr.FieldRef{Field: "UNIT-PRICE", File: "C"},
				Giving: instr.FieldRef{Field: "EXTENDED-PRICE", File: "C"},
			}),
		Entry("DIVIDE", "DIVIDE TOTAL (A) BY COUNT (A) GIVING AVERAGE (W)",
			instr.Divide{
				Left:   instr.FieldRef{Field: "TOTAL", File: "A"},
				Right:  instr.FieldRef{Field: "COUNT", File: "A"},
				Giving: instr.FieldRef{Field: "AVERAGE", File: "W"},
			}),
		Entry("IF END OF DATA", "IF END OF DATA GO TO OPERATION 14",
			instr.If{Clause: instr.Clause{Cond: instr.CondEndOfData, Target: 14}}),
		Entry("IF GREATER", "IF GREATER GO TO OPERATION 10",
			instr.If{Clause: instr.Clause{Cond: instr.CondGreater, Target: 10}}),
		Entry("IF LESS", "IF LESS GO TO OPERATION 3",
			instr.If{Clause: instr.Clause{Cond: instr.CondLess, Target: 3}}),
		Entry("standalone OTHERWISE", "OTHERWISE GO TO OPERATION 2", instr.Otherwise{}),
	)

	DescribeTable("malformed sub-commands",
		func(cmd string) {
			_, err := instr.Decode(cmd)
			Expect(err).To(MatchError(program.ErrMalformedInstruction))
		},
		Entry("INPUT without FILE-", "INPUT INVENTORY"),
		Entry("INPUT with bad spec", "INPUT INVENTORY A"),
		Entry("OUTPUT with bad tail", "OUTPUT X FILE-C ; PRINT C"),
		Entry("TRANSFER without TO", "TRANSFER A D"),
		Entry("COMPARE without WITH", "COMPARE X (A) Y (B)"),
		Entry("COMPARE with unknown clause", "COMPARE X (A) WITH Y (B) ; IF BIGGER GO TO OPERATION 1"),
		Entry("TEST with end-of-data clause", "TEST X (A) AGAINST 1 ; IF END OF DATA GO TO OPERATION 1"),
		Entry("READ-ITEM with comparison clause", "READ-ITEM A ; IF EQUAL GO TO OPERATION 1"),
		Entry("JUMP without target", "JUMP TO OPERATION"),
		Entry("SET without target", "SET OPERATION 1 TO OPERATION 2"),
		Entry("MOVE without letters", "MOVE X TO Y"),
		Entry("IF without target", "IF GREATER"),
		Entry("IF with unknown condition", "IF BIGGER GO TO OPERATION 2"),
		Entry("clause after MOVE", "MOVE X (A) TO X (B) ; STOP"),
		Entry("CLOSE-OUT without files", "CLOSE-OUT FILES"),
		Entry("JUMP out of range", "JUMP TO OPERATION 99999999999999999999"),
		Entry("SET source out of range", "SET OPERATION 99999999999999999999 TO GO TO OPERATION 1"),
		Entry("SET target out of range", "SET OPERATION 1 TO GO TO OPERATION 99999999999999999999"),
		Entry("IF out of range", "IF GREATER GO TO OPERATION 99999999999999999999"),
		Entry("OTHERWISE out of range", "IF OTHERWISE GO TO OPERATION 99999999999999999999"),
		Entry("COMPARE clause out of range",
			"COMPARE X (A) WITH Y (B) ; IF EQUAL GO TO OPERATION 99999999999999999999"),
		Entry("READ-ITEM clause out of range",
			"READ-ITEM A ; IF END OF DATA GO TO OPERATION 99999999999999999999"),
	)

	It("should reject unknown keywords with a suggestion", func() {
		_, err := instr.Decode("MOV X (A) TO X (B)")

		var unknown *instr.UnknownInstructionError
		Expect(err).To(BeAssignableToTypeOf(unknown))
		unknown = err.(*instr.UnknownInstructionError)
		Expect(unknown.Keyword).To(Equal("MOV"))
		Expect(unknown.Suggestion).To(Equal("MOVE"))
		Expect(err.Error()).To(ContainSubstring("did you mean MOVE?"))
	})

	It("should not suggest anything for unrelated words", func() {
		_, err := instr.Decode("PRINT ALL")
		Expect(err.(*instr.UnknownInstructionError).Suggestion).To(BeEmpty())
	})
})

var _ = Describe("Clauses", func() {
	clauses := []instr.Clause{
		{Cond: instr.CondOtherwise, Target: 2},
		{Cond: instr.CondEqual, Target: 5},
		{Cond: instr.CondGreater, Target: 10},
	}

	It("should pick the first holding condition in priority order", func() {
		c, ok := instr.FirstMatch(clauses, instr.CompareOrder, func(c instr.Cond) bool {
			return c == instr.CondEqual
		})
		Expect(ok).To(BeTrue())
		Expect(c.Target).To(Equal(program.OpNumber(5)))
	})

	It("should fall back to OTHERWISE", func() {
		c, ok := instr.FirstMatch(clauses, instr.TestOrder, func(instr.Cond) bool { return false })
		Expect(ok).To(BeTrue())
		Expect(c.Cond).To(Equal(instr.CondOtherwise))
	})

	It("should report no match without OTHERWISE", func() {
		_, ok := instr.FirstMatch(clauses[1:], instr.CompareOrder, func(c instr.Cond) bool {
			return c == instr.CondLess
		})
		Expect(ok).To(BeFalse())
	})

	It("should render clauses", func() {
		Expect(clauses[0].String()).To(Equal("OTHERWISE GO TO OPERATION 2"))
		Expect(clauses[1].String()).To(Equal("IF EQUAL GO TO OPERATION 5"))
	})
})

var _ = Describe("Keyword", func() {
	It("should round-trip names", func() {
		for _, name := range instr.Keywords() {
			kw, ok := instr.LookupKeyword(name)
			Expect(ok).To(BeTrue())
			Expect(kw.String()).To(Equal(name))
		}
	})
})
