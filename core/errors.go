package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/sarchlab/flowmatic/instr"
	"github.com/sarchlab/flowmatic/program"
)

var (
	// ErrNoSuchOperation is returned when control reaches or names an
	// operation number the program does not declare.
	ErrNoSuchOperation = errors.New("no such operation")
	// ErrNotNumeric is returned when arithmetic meets a non-numeric value.
	ErrNotNumeric = errors.New("value is not numeric")
	// ErrDivideByZero is returned by DIVIDE with a zero divisor.
	ErrDivideByZero = errors.New("division by zero")
	// ErrStepLimit is returned when a run exceeds its step budget.
	ErrStepLimit = errors.New("step limit reached")
	// ErrIO marks failures of the backing storage.
	ErrIO = errors.New("i/o failure")
)

// Kind classifies the failure that halted a machine.
type Kind int

// Failure kinds.
const (
	KindSyntax Kind = iota + 1
	KindReference
	KindArithmetic
	KindUnknownInstruction
	KindIO
	KindInterrupted
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindReference:
		return "ReferenceError"
	case KindArithmetic:
		return "ArithmeticError"
	case KindUnknownInstruction:
		return "UnknownInstruction"
	case KindIO:
		return "IOError"
	case KindInterrupted:
		return "Interrupted"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Fault describes the failure of one sub-command.
type Fault struct {
	Kind    Kind
	Op      program.OpNumber
	Command string
	Err     error
}

func (f *Fault) Error() string {
	if f.Command == "" {
		return fmt.Sprintf("%s at operation %s: %v", f.Kind, f.Op, f.Err)
	}

	return fmt.Sprintf("%s at operation %s in %q: %v", f.Kind, f.Op, f.Command, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func classify(err error) Kind {
	var unknown *instr.UnknownInstructionError
	var syntax *program.SyntaxError

	switch {
	case errors.As(err, &unknown):
		return KindUnknownInstruction
	case errors.As(err, &syntax):
		return KindSyntax
	case errors.Is(err, ErrNotNumeric), errors.Is(err, ErrDivideByZero):
		return KindArithmetic
	case errors.Is(err, ErrIO):
		return KindIO
	case errors.Is(err, ErrStepLimit),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return KindInterrupted
	default:
		return KindReference
	}
}
