package instr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sarchlab/flowmatic/program"
)

// UnknownInstructionError is returned for a sub-command whose leading word
// is not a keyword.
type UnknownInstructionError struct {
	Keyword    string
	Command    string
	Suggestion string
}

func (e *UnknownInstructionError) Error() string {
	msg := fmt.Sprintf("unknown command %q", e.Command)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %s?)", e.Suggestion)
	}

	return msg
}

const (
	field  = `(.+?) \(\s*(\w+)\s*\)`
	target = `GO TO OPERATION (\d+)`
)

var (
	transferPattern  = regexp.MustCompile(`^TRANSFER \(?(\w+)\)? TO \(?(\w+)\)?$`)
	comparePattern   = regexp.MustCompile(`^COMPARE ` + field + ` WITH ` + field + `$`)
	readItemPattern  = regexp.MustCompile(`^READ-ITEM (\w+)$`)
	writeItemPattern = regexp.MustCompile(`^WRITE-ITEM (\w+)$`)
	movePattern      = regexp.MustCompile(`^MOVE ` + field + ` TO ` + field + `$`)
	jumpPattern      = regexp.MustCompile(`^JUMP TO OPERATION (\d+)$`)
	testPattern      = regexp.MustCompile(`^TEST ` + field + ` AGAINST (.+)$`)
	setPattern       = regexp.MustCompile(`^SET OPERATION (\d+) TO GO TO OPERATION (\d+)$`)
	rewindPattern    = regexp.MustCompile(`^REWIND (\w+)$`)
	closeOutPattern  = regexp.MustCompile(`^CLOSE-OUT FILES? ([\w ,]+)$`)
	hspPattern       = regexp.MustCompile(`^HSP (\w+)$`)
	addPattern       = regexp.MustCompile(`^ADD ` + field + ` TO ` + field + `$`)
	subtractPattern  = regexp.MustCompile(`^SUBTRACT ` + field + ` FROM ` + field + `$`)
	multiplyPattern  = regexp.MustCompile(`^MULTIPLY ` + field + ` BY ` + field + ` GIVING ` + field + `$`)
	dividePattern    = regexp.MustCompile(`^DIVIDE ` + field + ` BY ` + field + ` GIVING ` + field + `$`)
	ifPattern        = regexp.MustCompile(`^IF (GREATER|EQUAL|LESS|END OF DATA|OTHERWISE) ` + target + `$`)
	otherwisePattern = regexp.MustCompile(`^OTHERWISE ` + target + `$`)
)

// Decode turns one sub-command into an instruction.
func Decode(cmd string) (Inst, error) {
	cmd = strings.Join(strings.Fields(cmd), " ")
	head, tail, _ := strings.Cut(cmd, ";")
	head = strings.TrimSpace(head)

	word := firstWord(head)
	kw, ok := LookupKeyword(word)
	if !ok {
		return nil, &UnknownInstructionError{
			Keyword:    word,
			Command:    cmd,
			Suggestion: Suggest(word),
		}
	}

	switch kw {
	case KwCompare, KwTest, KwReadItem, KwOutput, KwOtherwise:
	default:
		if strings.TrimSpace(tail) != "" {
			return nil, program.Malformed(cmd, "unexpected clause after "+kw.String())
		}
	}

	switch kw {
	case KwInput:
		files, err := decodeFileSpecs(cmd, head)
		if err != nil {
			return nil, err
		}
		return Input{Files: files}, nil
	case KwOutput:
		return decodeOutput(cmd, head, tail)
	case KwHSP:
		m := hspPattern.FindStringSubmatch(head)
		if m == nil {
			return nil, program.Malformed(cmd, "expected HSP <letter>")
		}
		return HSP{File: m[1]}, nil
	case KwTransfer:
		m := transferPattern.FindStringSubmatch(head)
		if m == nil {
			return nil, program.Malformed(cmd, "expected TRANSFER <letter> TO <letter>")
		}
		return Transfer{From: m[1], To: m[2]}, nil
	case KwCompare:
		return decodeCompare(cmd, head, tail)
	case KwReadItem:
		return decodeReadItem(cmd, head, tail)
	case KwWriteItem:
		m := writeItemPattern.FindStringSubmatch(head)
		if m == nil {
			return nil, program.Malformed(cmd, "expected WRITE-ITEM <letter>")
		}
		return WriteItem{File: m[1]}, nil
	case KwMove:
		m := movePattern.FindStringSubmatch(head)
		if m == nil {
			return nil, program.Malformed(cmd, "expected MOVE <field> (<letter>) TO <field> (<letter>)")
		}
		return Move{From: ref(m, 1), To: ref(m, 3)}, nil
	case KwJump:
		m := jumpPattern.FindStringSubmatch(head)
		if m == nil {
			return nil, program.Malformed(cmd, "expected JUMP TO OPERATION <n>")
		}
		target, err := opNumber(cmd, m[1])
		if err != nil {
			return nil, err
		}
		return Jump{Target: target}, nil
	case KwStop:
		return Stop{}, nil
	case KwTest:
		return decodeTest(cmd, head, tail)
	case KwSet:
		m := setPattern.FindStringSubmatch(head)
		if m == nil {
			return nil, program.Malformed(cmd, "expected SET OPERATION <n> TO GO TO OPERATION <m>")
		}
		from, err := opNumber(cmd, m[1])
		if err != nil {
			return nil, err
		}
		to, err := opNumber(cmd, m[2])
		if err != nil {
			return nil, err
		}
		return Set{From: from, To: to}, nil
	case KwRewind:
		m := rewindPattern.FindStringSubmatch(head)
		if m == nil {
			return nil, program.Malformed(cmd, "expected REWIND <letter>")
		}
		return Rewind{File: m[1]}, nil
	case KwCloseOut:
		return decodeCloseOut(cmd, head)
	case KwAdd:
		m := addPattern.FindStringSubmatch(head)
		if m == nil {
			return nil, program.Malformed(cmd, "expected ADD <field> (<letter>) TO <field> (<letter>)")
		}
		return Add{From: ref(m, 1), To: ref(m, 3)}, nil
	case KwSubtract:
		m := subtractPattern.FindStringSubmatch(head)
		if m == nil {
			return nil, program.Malformed(cmd, "expected SUBTRACT <field> (<letter>) FROM <field> (<letter>)")
		}
		return Subtract{Amount: ref(m, 1), From: ref(m, 3)}, nil
	case KwMultiply:
		m := multiplyPattern.FindStringSubmatch(head)
		if m == nil {
			return nil, program.Malformed(cmd, "expected MULTIPLY <field> (<letter>) BY <field> (<letter>) GIVING <field> (<letter>)")
		}
		return Multiply{Left: ref(m, 1), Right: ref(m, 3), Giving: ref(m, 5)}, nil
	case KwDivide:
		m := dividePattern.FindStringSubmatch(head)
		if m == nil {
			return nil, program.Malformed(cmd, "expected DIVIDE <field> (<letter>) BY <field> (<letter>) GIVING <field> (<letter>)")
		}
		return Divide{Left: ref(m, 1), Right: ref(m, 3), Giving: ref(m, 5)}, nil
	case KwIf:
		c, ok, err := decodeClause(cmd, head)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, program.Malformed(cmd, "unrecognized conditional")
		}
		return If{Clause: c}, nil
	case KwOtherwise:
		return Otherwise{}, nil
	}

	panic("keyword without decoder: " + kw.String())
}

func ref(m []string, i int) FieldRef {
	return FieldRef{Field: m[i], File: m[i+1]}
}

// opNumber parses digits already matched by a pattern. A digit run that
// does not fit an operation number makes cmd malformed.
func opNumber(cmd, digits string) (program.OpNumber, error) {
	n, err := program.ParseOpNumber(digits)
	if err != nil {
		return 0, program.Malformed(cmd, err.Error())
	}

	return n, nil
}

func decodeClause(cmd, s string) (Clause, bool, error) {
	s = strings.TrimSpace(s)
	if m := ifPattern.FindStringSubmatch(s); m != nil {
		conds := map[string]Cond{
			"GREATER":     CondGreater,
			"EQUAL":       CondEqual,
			"LESS":        CondLess,
			"END OF DATA": CondEndOfData,
			"OTHERWISE":   CondOtherwise,
		}
		target, err := opNumber(cmd, m[2])
		if err != nil {
			return Clause{}, false, err
		}
		return Clause{Cond: conds[m[1]], Target: target}, true, nil
	}

	if m := otherwisePattern.FindStringSubmatch(s); m != nil {
		target, err := opNumber(cmd, m[1])
		if err != nil {
			return Clause{}, false, err
		}
		return Clause{Cond: CondOtherwise, Target: target}, true, nil
	}

	return Clause{}, false, nil
}

// decodeClauses parses the semicolon-separated clauses that follow the head
// of a COMPARE or TEST.
func decodeClauses(cmd, tail string, allowed ...Cond) ([]Clause, error) {
	var clauses []Clause
	for _, part := range strings.Split(tail, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		c, ok, err := decodeClause(cmd, part)
		if err != nil {
			return nil, err
		}
		if !ok || !containsCond(allowed, c.Cond) {
			return nil, program.Malformed(cmd, "unrecognized clause "+part)
		}

		clauses = append(clauses, c)
	}

	return clauses, nil
}

func containsCond(conds []Cond, c Cond) bool {
	for _, x := range conds {
		if x == c {
			return true
		}
	}

	return false
}

func decodeCompare(cmd, head, tail string) (Inst, error) {
	m := comparePattern.FindStringSubmatch(head)
	if m == nil {
		return nil, program.Malformed(cmd, "expected COMPARE <field> (<letter>) WITH <field> (<letter>)")
	}

	clauses, err := decodeClauses(cmd, tail, CompareOrder...)
	if err != nil {
		return nil, err
	}

	return Compare{Left: ref(m, 1), Right: ref(m, 3), Clauses: clauses}, nil
}

func decodeTest(cmd, head, tail string) (Inst, error) {
	m := testPattern.FindStringSubmatch(head)
	if m == nil {
		return nil, program.Malformed(cmd, "expected TEST <field> (<letter>) AGAINST <value>")
	}

	clauses, err := decodeClauses(cmd, tail, TestOrder...)
	if err != nil {
		return nil, err
	}

	return Test{Field: ref(m, 1), Literal: strings.TrimSpace(m[3]), Clauses: clauses}, nil
}

func decodeReadItem(cmd, head, tail string) (Inst, error) {
	m := readItemPattern.FindStringSubmatch(head)
	if m == nil {
		return nil, program.Malformed(cmd, "expected READ-ITEM <letter>")
	}

	inst := ReadItem{File: m[1]}
	clauses, err := decodeClauses(cmd, tail, CondEndOfData)
	if err != nil {
		return nil, err
	}

	if len(clauses) > 0 {
		t := clauses[0].Target
		inst.EndOfData = &t
	}

	return inst, nil
}

// decodeFileSpecs parses "KEYWORD NAME FILE-X NAME FILE-Y ...".
func decodeFileSpecs(cmd, head string) ([]FileSpec, error) {
	words := strings.Fields(head)[1:]
	if len(words) == 0 {
		return nil, program.Malformed(cmd, "missing file specification")
	}

	var files []FileSpec
	for i := 0; i < len(words); i += 2 {
		if i+1 >= len(words) {
			return nil, program.Malformed(cmd, "missing FILE- specification after "+words[i])
		}

		spec := words[i+1]
		if !strings.HasPrefix(spec, "FILE-") || len(spec) == len("FILE-") {
			return nil, program.Malformed(cmd, "expected FILE- but got "+spec)
		}

		files = append(files, FileSpec{Name: words[i], Letter: spec[len("FILE-"):]})
	}

	return files, nil
}

func decodeOutput(cmd, head, tail string) (Inst, error) {
	files, err := decodeFileSpecs(cmd, head)
	if err != nil {
		return nil, err
	}

	out := Output{Files: files}
	tail = strings.TrimSpace(tail)
	if tail == "" {
		return out, nil
	}

	m := hspPattern.FindStringSubmatch(tail)
	if m == nil {
		return nil, program.Malformed(cmd, "expected HSP <letter> after OUTPUT")
	}
	out.Printer = m[1]

	return out, nil
}

func decodeCloseOut(cmd, head string) (Inst, error) {
	m := closeOutPattern.FindStringSubmatch(head)
	if m == nil {
		return nil, program.Malformed(cmd, "expected CLOSE-OUT FILES <letter>, ...")
	}

	var files []string
	for _, letter := range strings.Split(m[1], ",") {
		letter = strings.TrimSpace(letter)
		if letter != "" {
			files = append(files, letter)
		}
	}

	if len(files) == 0 {
		return nil, program.Malformed(cmd, "no files to close")
	}

	return CloseOut{Files: files}, nil
}
