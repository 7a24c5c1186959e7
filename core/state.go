package core

import (
	"github.com/sarchlab/flowmatic/program"
	"github.com/sarchlab/flowmatic/record"
)

// State is the run state of a machine.
type State int

// Run states.
const (
	Running State = iota
	HaltedNormal
	HaltedFatal
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case HaltedNormal:
		return "HaltedNormal"
	default:
		return "HaltedFatal"
	}
}

// Status is the result of the most recent COMPARE.
type Status int

// Comparison statuses. The zero value is StatusEqual.
const (
	StatusEqual Status = iota
	StatusGreater
	StatusLess
)

func (s Status) String() string {
	switch s {
	case StatusGreater:
		return "GREATER"
	case StatusLess:
		return "LESS"
	default:
		return "EQUAL"
	}
}

func statusOf(cmp int) Status {
	switch {
	case cmp > 0:
		return StatusGreater
	case cmp < 0:
		return StatusLess
	default:
		return StatusEqual
	}
}

type machineState struct {
	prog   *program.Program
	jumps  program.JumpTable
	op     program.OpNumber
	status Status
	store  *record.Store
}
