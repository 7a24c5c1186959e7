// Package program holds the operation table of a FLOW-MATIC program and the
// parser that builds it.
package program

import (
	"fmt"
	"strconv"

	"github.com/google/btree"
)

// OpNumber addresses one operation of a program.
type OpNumber int

// String renders the number the way it is written in program text.
func (n OpNumber) String() string {
	return "(" + strconv.Itoa(int(n)) + ")"
}

// ParseOpNumber parses a bare decimal operation number such as "12".
func ParseOpNumber(s string) (OpNumber, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid operation number %q", s)
	}

	return OpNumber(n), nil
}

// Operation is one numbered instruction as written in the program.
type Operation struct {
	Number OpNumber
	// Text is everything after the operation number, up to and including
	// the terminating period.
	Text string
	// Line is the 1-based source line the operation was declared on.
	Line int
}

func lessOperation(a, b Operation) bool {
	return a.Number < b.Number
}

// Program is the immutable instruction table produced by Parse.
type Program struct {
	ops *btree.BTreeG[Operation]

	// Diagnostics lists the lines that were skipped or overwritten while
	// parsing.
	Diagnostics []*SyntaxError
}

func newProgram() *Program {
	return &Program{
		ops: btree.NewG(8, lessOperation),
	}
}

// Len returns the number of operations.
func (p *Program) Len() int {
	return p.ops.Len()
}

// Has reports whether operation n exists.
func (p *Program) Has(n OpNumber) bool {
	return p.ops.Has(Operation{Number: n})
}

// Operation returns operation n.
func (p *Program) Operation(n OpNumber) (Operation, bool) {
	return p.ops.Get(Operation{Number: n})
}

// Instruction returns the raw instruction text of operation n.
func (p *Program) Instruction(n OpNumber) (string, bool) {
	op, ok := p.ops.Get(Operation{Number: n})
	return op.Text, ok
}

// Operations returns all operations in ascending number order.
func (p *Program) Operations() []Operation {
	ops := make([]Operation, 0, p.ops.Len())
	p.ops.Ascend(func(op Operation) bool {
		ops = append(ops, op)
		return true
	})

	return ops
}

// put stores op, reporting whether it replaced an earlier declaration.
func (p *Program) put(op Operation) (Operation, bool) {
	return p.ops.ReplaceOrInsert(op)
}

// DefaultJumps builds a fresh jump table where every operation n falls
// through to n+1 if it exists, and ends the program otherwise.
func (p *Program) DefaultJumps() JumpTable {
	jumps := make(JumpTable, p.ops.Len())
	p.ops.Ascend(func(op Operation) bool {
		next := op.Number + 1
		if p.Has(next) {
			jumps[op.Number] = Successor{Op: next, Valid: true}
		} else {
			jumps[op.Number] = Successor{}
		}
		return true
	})

	return jumps
}

// Successor is the operation control flows to once another operation
// finishes without branching. Valid is false at the end of the program.
type Successor struct {
	Op    OpNumber
	Valid bool
}

// String renders the successor as an operation number or "END".
func (s Successor) String() string {
	if !s.Valid {
		return "END"
	}

	return s.Op.String()
}

// JumpTable maps each operation to its successor. Unlike the instruction
// table it changes at run time when SET installs an override edge.
type JumpTable map[OpNumber]Successor

// Next returns the successor of op.
func (j JumpTable) Next(op OpNumber) (Successor, bool) {
	s, ok := j[op]
	return s, ok
}

// Set overrides the successor of from. Callers check that both operations
// exist.
func (j JumpTable) Set(from, to OpNumber) {
	j[from] = Successor{Op: to, Valid: true}
}
