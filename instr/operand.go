package instr

import (
	"fmt"

	"github.com/sarchlab/flowmatic/program"
)

// FieldRef names a field on the current record of a file, written
// "FIELD (L)".
type FieldRef struct {
	Field string
	File  string
}

func (f FieldRef) String() string {
	return fmt.Sprintf("%s (%s)", f.Field, f.File)
}

// Cond is the condition of a conditional clause.
type Cond int

// Clause conditions.
const (
	CondGreater Cond = iota
	CondEqual
	CondLess
	CondEndOfData
	CondOtherwise
)

var condNames = map[Cond]string{
	CondGreater:   "GREATER",
	CondEqual:     "EQUAL",
	CondLess:      "LESS",
	CondEndOfData: "END OF DATA",
	CondOtherwise: "OTHERWISE",
}

func (c Cond) String() string {
	return condNames[c]
}

// Clause is a conditional branch.
type Clause struct {
	Cond   Cond
	Target program.OpNumber
}

func (c Clause) String() string {
	if c.Cond == CondOtherwise {
		return fmt.Sprintf("OTHERWISE GO TO OPERATION %d", c.Target)
	}

	return fmt.Sprintf("IF %s GO TO OPERATION %d", c.Cond, c.Target)
}

// Evaluation orders of the clause sets. COMPARE looks at GREATER first and
// TEST at EQUAL first; OTHERWISE is always the last resort.
var (
	CompareOrder = []Cond{CondGreater, CondEqual, CondLess, CondOtherwise}
	TestOrder    = []Cond{CondEqual, CondGreater, CondLess, CondOtherwise}
)

// FirstMatch returns the first clause, in the given condition order, whose
// condition holds.
func FirstMatch(clauses []Clause, order []Cond, holds func(Cond) bool) (Clause, bool) {
	for _, cond := range order {
		if cond != CondOtherwise && !holds(cond) {
			continue
		}

		for _, c := range clauses {
			if c.Cond == cond {
				return c, true
			}
		}
	}

	return Clause{}, false
}
