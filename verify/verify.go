// Package verify statically checks FLOW-MATIC programs before they run.
//
// The lint pass looks at every operation without executing anything:
//
//   - SYNTAX: lines the parser skipped, re-declared operations, and
//     sub-commands that do not decode (unknown keywords come with a
//     "did you mean" suggestion).
//   - REF: branch and SET targets that name no operation, and files that
//     are read before any INPUT or OUTPUT declares them.
//   - FLOW: operations no path from operation 0 reaches, and output files
//     that are never closed out.
//
// Issues carry a severity. Errors are certain to fail at run time once the
// offending sub-command executes; warnings point at likely mistakes.
package verify

import (
	"fmt"

	"github.com/sarchlab/flowmatic/program"
)

// IssueType groups lint issues.
type IssueType string

// Issue types.
const (
	IssueSyntax IssueType = "SYNTAX"
	IssueRef    IssueType = "REF"
	IssueFlow   IssueType = "FLOW"
)

// Severity tells whether an issue fails the lint.
type Severity int

// Severities.
const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}

	return "warning"
}

// NoOp marks issues that belong to no single operation.
const NoOp program.OpNumber = -1

// Issue is one lint finding.
type Issue struct {
	Type     IssueType
	Severity Severity
	Op       program.OpNumber
	Line     int
	Command  string
	Message  string
	Details  map[string]interface{}
}

func (i Issue) String() string {
	where := "program"
	if i.Op != NoOp {
		where = "operation " + i.Op.String()
	}

	return fmt.Sprintf("%s %s at %s: %s", i.Type, i.Severity, where, i.Message)
}
