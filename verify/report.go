package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/flowmatic/program"
)

// Report is the lint result of one program.
type Report struct {
	Name       string
	Operations int
	Issues     []Issue
}

// GenerateReport lints a program.
func GenerateReport(name string, prog *program.Program) *Report {
	return &Report{
		Name:       name,
		Operations: prog.Len(),
		Issues:     RunLint(prog),
	}
}

// Errors returns the issues of error severity.
func (r *Report) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the issues of warning severity.
func (r *Report) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

// HasErrors reports whether the program failed the lint.
func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

func (r *Report) filter(s Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == s {
			out = append(out, issue)
		}
	}

	return out
}

// WriteReport writes the report as a table.
func (r *Report) WriteReport(w io.Writer) {
	fmt.Fprintf(w, "Lint report for %s: %d operations\n", r.Name, r.Operations)

	if len(r.Issues) == 0 {
		fmt.Fprintln(w, "No issues found.")
		return
	}

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%d errors, %d warnings", len(r.Errors()), len(r.Warnings())))
	t.AppendHeader(table.Row{"Type", "Severity", "Op", "Line", "Message", "Hint"})

	for _, issue := range r.Issues {
		op := "-"
		if issue.Op != NoOp {
			op = issue.Op.String()
		}

		line := "-"
		if issue.Line > 0 {
			line = fmt.Sprint(issue.Line)
		}

		hint := ""
		if s, ok := issue.Details["suggestion"]; ok {
			hint = fmt.Sprintf("did you mean %s?", s)
		}

		t.AppendRow(table.Row{issue.Type, issue.Severity, op, line, issue.Message, hint})
	}

	fmt.Fprintln(w, t.Render())

	if r.HasErrors() {
		fmt.Fprintln(w, strings.ToUpper("lint failed"))
	}
}

// SaveReportToFile saves the report to a file.
func (r *Report) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)

	return nil
}
