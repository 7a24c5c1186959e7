package program

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

var opNumberPattern = regexp.MustCompile(`^\((\d+)\)$`)

// IsOpNumber reports whether token is an operation number such as "(12)".
func IsOpNumber(token string) bool {
	return opNumberPattern.MatchString(token)
}

// Option configures the parser.
type Option func(*parser)

// WithStrict makes every diagnostic fatal. Without it, malformed lines are
// skipped and a re-declared operation silently replaces the earlier one.
func WithStrict() Option {
	return func(p *parser) {
		p.strict = true
	}
}

type parser struct {
	strict bool
	prog   *Program
}

// ParseFile reads and parses the program stored at path.
func ParseFile(path string, opts ...Option) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	return Parse(string(data), opts...)
}

// Parse builds the instruction table of a program.
func Parse(text string, opts ...Option) (*Program, error) {
	p := &parser{prog: newProgram()}
	for _, opt := range opts {
		opt(p)
	}

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		p.parseLine(i+1, line)
	}

	if p.strict && len(p.prog.Diagnostics) > 0 {
		errs := make([]error, 0, len(p.prog.Diagnostics))
		for _, d := range p.prog.Diagnostics {
			errs = append(errs, d)
		}

		return nil, errors.Join(errs...)
	}

	if !p.prog.Has(0) {
		return nil, ErrNoEntryPoint
	}

	return p.prog, nil
}

func (p *parser) report(err *SyntaxError) {
	slog.Warn("Skipping program line", "Line", err.Line, "Error", err.Error())
	p.prog.Diagnostics = append(p.prog.Diagnostics, err)
}

func (p *parser) parseLine(lineNo int, line string) {
	if !strings.Contains(line, ".") {
		p.report(&SyntaxError{Line: lineNo, Text: line, Err: ErrMissingTerminator})
		return
	}

	tokens := strings.Fields(line)
	if !IsOpNumber(tokens[0]) {
		p.report(&SyntaxError{Line: lineNo, Text: line, Err: ErrMissingOpNumber})
		return
	}

	for _, stmt := range splitStatements(tokens) {
		p.declare(lineNo, stmt)
	}
}

// splitStatements cuts a line into operations. A token ending in a period
// closes the current operation when it is followed by another operation
// number or by the end of the line. Tokens after the last terminator that
// do not open an operation are a trailing remark, as in "STOP . (END)".
func splitStatements(tokens []string) [][]string {
	var stmts [][]string

	start := 0
	lastTerm := -1
	for i := 1; i < len(tokens); i++ {
		if strings.HasSuffix(tokens[i], ".") {
			lastTerm = i
		}

		if lastTerm == i-1 && IsOpNumber(tokens[i]) {
			stmts = append(stmts, tokens[start:i])
			start = i
			lastTerm = -1
		}
	}

	end := len(tokens)
	if lastTerm > start {
		end = lastTerm + 1
	}

	return append(stmts, tokens[start:end])
}

func (p *parser) declare(lineNo int, tokens []string) {
	num, err := ParseOpNumber(strings.Trim(tokens[0], "()"))
	if err != nil {
		p.report(&SyntaxError{
			Line:   lineNo,
			Text:   strings.Join(tokens, " "),
			Detail: err.Error(),
			Err:    ErrMissingOpNumber,
		})

		return
	}

	op := Operation{
		Number: num,
		Text:   strings.Join(tokens[1:], " "),
		Line:   lineNo,
	}

	if prev, replaced := p.prog.put(op); replaced {
		p.prog.Diagnostics = append(p.prog.Diagnostics, &SyntaxError{
			Line:   lineNo,
			Text:   strings.Join(tokens, " "),
			Detail: fmt.Sprintf("first declared on line %d", prev.Line),
			Err:    ErrRedeclared,
		})
		slog.Debug("Operation redeclared", "Op", num, "Line", lineNo, "PrevLine", prev.Line)
	}
}
