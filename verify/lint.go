package verify

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sarchlab/flowmatic/instr"
	"github.com/sarchlab/flowmatic/program"
)

type decodedOp struct {
	op    program.Operation
	cmds  []string
	insts []instr.Inst
}

type linter struct {
	prog   *program.Program
	ops    []decodedOp
	issues []Issue

	inputs   map[string]bool
	outputs  map[string]bool
	scratch  map[string]bool
	closed   map[string]bool
	firstUse map[string]program.OpNumber
}

// RunLint performs static checks on a parsed program and returns the
// issues found, ordered by operation.
func RunLint(prog *program.Program) []Issue {
	l := &linter{
		prog:     prog,
		inputs:   make(map[string]bool),
		outputs:  make(map[string]bool),
		scratch:  make(map[string]bool),
		closed:   make(map[string]bool),
		firstUse: make(map[string]program.OpNumber),
	}

	l.checkDiagnostics()
	l.decodeAll()
	l.collectFiles()
	l.checkTargets()
	l.checkFiles()
	l.checkReachability()

	sort.SliceStable(l.issues, func(i, j int) bool {
		return l.issues[i].Op < l.issues[j].Op
	})

	return l.issues
}

func (l *linter) add(issue Issue) {
	if issue.Details == nil {
		issue.Details = map[string]interface{}{}
	}
	l.issues = append(l.issues, issue)
}

func (l *linter) checkDiagnostics() {
	for _, d := range l.prog.Diagnostics {
		sev := SeverityError
		op := NoOp
		if errors.Is(d, program.ErrRedeclared) {
			sev = SeverityWarning
		}

		l.add(Issue{
			Type:     IssueSyntax,
			Severity: sev,
			Op:       op,
			Line:     d.Line,
			Command:  d.Text,
			Message:  d.Error(),
		})
	}
}

func (l *linter) decodeAll() {
	for _, op := range l.prog.Operations() {
		d := decodedOp{op: op}

		for _, cmd := range instr.Split(op.Text) {
			inst, err := instr.Decode(cmd)
			if err != nil {
				l.decodeIssue(op, cmd, err)
				continue
			}

			d.cmds = append(d.cmds, cmd)
			d.insts = append(d.insts, inst)
		}

		l.ops = append(l.ops, d)
	}
}

func (l *linter) decodeIssue(op program.Operation, cmd string, err error) {
	issue := Issue{
		Type:     IssueSyntax,
		Severity: SeverityError,
		Op:       op.Number,
		Line:     op.Line,
		Command:  cmd,
		Message:  err.Error(),
		Details:  map[string]interface{}{},
	}

	var unknown *instr.UnknownInstructionError
	if errors.As(err, &unknown) && unknown.Suggestion != "" {
		issue.Details["suggestion"] = unknown.Suggestion
	}

	l.add(issue)
}

func (l *linter) use(letter string, op program.OpNumber) {
	if _, ok := l.firstUse[letter]; !ok {
		l.firstUse[letter] = op
	}
}

// collectFiles records which letters are declared, written, read and
// closed anywhere in the program.
func (l *linter) collectFiles() {
	for _, d := range l.ops {
		n := d.op.Number
		for _, inst := range d.insts {
			switch inst := inst.(type) {
			case instr.Input:
				for _, f := range inst.Files {
					l.inputs[f.Letter] = true
				}
			case instr.Output:
				for _, f := range inst.Files {
					l.outputs[f.Letter] = true
				}
			case instr.Transfer:
				l.use(inst.From, n)
				l.scratch[inst.To] = true
			case instr.Move:
				l.use(inst.From.File, n)
				l.scratch[inst.To.File] = true
			case instr.Add:
				l.use(inst.From.File, n)
				l.use(inst.To.File, n)
			case instr.Subtract:
				l.use(inst.Amount.File, n)
				l.use(inst.From.File, n)
			case instr.Multiply:
				l.use(inst.Left.File, n)
				l.use(inst.Right.File, n)
				l.scratch[inst.Giving.File] = true
			case instr.Divide:
				l.use(inst.Left.File, n)
				l.use(inst.Right.File, n)
				l.scratch[inst.Giving.File] = true
			case instr.Compare:
				l.use(inst.Left.File, n)
				l.use(inst.Right.File, n)
			case instr.Test:
				l.use(inst.Field.File, n)
			case instr.ReadItem:
				l.use(inst.File, n)
			case instr.WriteItem:
				l.use(inst.File, n)
			case instr.Rewind:
				l.use(inst.File, n)
			case instr.HSP:
				l.use(inst.File, n)
			case instr.CloseOut:
				for _, f := range inst.Files {
					l.closed[f] = true
				}
			}
		}
	}
}

func (l *linter) checkTargets() {
	for _, d := range l.ops {
		for i, inst := range d.insts {
			for _, t := range targets(inst) {
				if l.prog.Has(t) {
					continue
				}

				l.add(Issue{
					Type:     IssueRef,
					Severity: SeverityError,
					Op:       d.op.Number,
					Line:     d.op.Line,
					Command:  d.cmds[i],
					Message:  fmt.Sprintf("operation %s does not exist", t),
					Details:  map[string]interface{}{"target": int(t)},
				})
			}
		}
	}
}

func (l *linter) checkFiles() {
	letters := make([]string, 0, len(l.firstUse))
	for letter := range l.firstUse {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	for _, letter := range letters {
		if l.inputs[letter] || l.outputs[letter] || l.scratch[letter] {
			continue
		}

		op := l.firstUse[letter]
		line := 0
		if o, ok := l.prog.Operation(op); ok {
			line = o.Line
		}

		l.add(Issue{
			Type:     IssueRef,
			Severity: SeverityError,
			Op:       op,
			Line:     line,
			Message:  fmt.Sprintf("file %s is used but never declared by INPUT or OUTPUT", letter),
			Details:  map[string]interface{}{"file": letter},
		})
	}

	outputs := make([]string, 0, len(l.outputs))
	for letter := range l.outputs {
		outputs = append(outputs, letter)
	}
	sort.Strings(outputs)

	for _, letter := range outputs {
		if l.closed[letter] {
			continue
		}

		l.add(Issue{
			Type:     IssueFlow,
			Severity: SeverityWarning,
			Op:       NoOp,
			Message:  fmt.Sprintf("output file %s is never closed out, its items are never saved", letter),
			Details:  map[string]interface{}{"file": letter},
		})
	}
}

// checkReachability walks the operations reachable from operation 0. An
// operation falls through to its successor unless it always leaves by a
// JUMP, STOP or OTHERWISE branch. SET adds the overriding edge.
func (l *linter) checkReachability() {
	byNum := make(map[program.OpNumber]decodedOp, len(l.ops))
	for _, d := range l.ops {
		byNum[d.op.Number] = d
	}

	jumps := l.prog.DefaultJumps()
	seen := map[program.OpNumber]bool{0: true}
	queue := []program.OpNumber{0}

	visit := func(n program.OpNumber) {
		if l.prog.Has(n) && !seen[n] {
			seen[n] = true
			queue = append(queue, n)
		}
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		d := byNum[n]

		for _, inst := range d.insts {
			if set, ok := inst.(instr.Set); ok {
				visit(set.To)
				continue
			}

			for _, t := range targets(inst) {
				visit(t)
			}
		}

		if !leavesUnconditionally(n, d.insts) {
			if next, ok := jumps.Next(n); ok && next.Valid {
				visit(next.Op)
			}
		}
	}

	for _, d := range l.ops {
		if seen[d.op.Number] {
			continue
		}

		l.add(Issue{
			Type:     IssueFlow,
			Severity: SeverityWarning,
			Op:       d.op.Number,
			Line:     d.op.Line,
			Message:  "operation is unreachable from operation (0)",
		})
	}
}

func targets(inst instr.Inst) []program.OpNumber {
	var out []program.OpNumber

	switch inst := inst.(type) {
	case instr.Jump:
		out = append(out, inst.Target)
	case instr.Set:
		out = append(out, inst.From, inst.To)
	case instr.ReadItem:
		if inst.EndOfData != nil {
			out = append(out, *inst.EndOfData)
		}
	case instr.If:
		out = append(out, inst.Clause.Target)
	case instr.Compare:
		for _, c := range inst.Clauses {
			out = append(out, c.Target)
		}
	case instr.Test:
		for _, c := range inst.Clauses {
			out = append(out, c.Target)
		}
	}

	return out
}

// leavesUnconditionally reports whether operation n always moves elsewhere
// before reaching its successor. A branch back to n itself does not count.
func leavesUnconditionally(n program.OpNumber, insts []instr.Inst) bool {
	for _, inst := range insts {
		switch inst := inst.(type) {
		case instr.Stop:
			return true
		case instr.Jump:
			if inst.Target != n {
				return true
			}
		case instr.If:
			if inst.Clause.Cond == instr.CondOtherwise && inst.Clause.Target != n {
				return true
			}
		case instr.Compare:
			if otherwiseLeaves(n, inst.Clauses) {
				return true
			}
		case instr.Test:
			if otherwiseLeaves(n, inst.Clauses) {
				return true
			}
		}
	}

	return false
}

func otherwiseLeaves(n program.OpNumber, clauses []instr.Clause) bool {
	otherwise := false
	for _, c := range clauses {
		if c.Target == n {
			return false
		}
		if c.Cond == instr.CondOtherwise {
			otherwise = true
		}
	}

	return otherwise
}
