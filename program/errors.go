package program

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTerminator is reported for a line without a period.
	ErrMissingTerminator = errors.New("end not in line")
	// ErrMissingOpNumber is reported for a line that does not begin with
	// an operation number.
	ErrMissingOpNumber = errors.New("line must begin with operation number")
	// ErrRedeclared is reported when an operation number is declared twice.
	ErrRedeclared = errors.New("operation redeclared")
	// ErrNoEntryPoint is returned when a program has no operation 0.
	ErrNoEntryPoint = errors.New("program must start with operation 0")
	// ErrMalformedInstruction is reported when an instruction does not match
	// the shape its keyword requires.
	ErrMalformedInstruction = errors.New("malformed instruction")
)

// SyntaxError describes malformed program text.
type SyntaxError struct {
	// Line is the 1-based source line, or 0 when the error was found while
	// decoding an instruction at run time.
	Line int
	Text string
	// Detail optionally narrows down what is wrong with Text.
	Detail string
	Err    error
}

func (e *SyntaxError) Error() string {
	msg := "syntax error - " + e.Err.Error()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}

	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, msg, e.Text)
	}

	return fmt.Sprintf("%s: %s", msg, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Malformed builds the error returned for an instruction whose shape does
// not match its keyword.
func Malformed(text, detail string) *SyntaxError {
	return &SyntaxError{
		Text:   text,
		Detail: detail,
		Err:    ErrMalformedInstruction,
	}
}
