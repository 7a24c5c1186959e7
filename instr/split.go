package instr

import "strings"

// Split expands the raw text of one operation into the sub-commands the
// machine dispatches in order.
//
// COMPARE and TEST keep all their clauses in a single sub-command, because
// the clauses read the comparison result the head produces. Everything else
// is split on semicolons.
func Split(text string) []string {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimSuffix(text, "."))

	switch firstWord(text) {
	case "COMPARE", "TEST":
		return []string{text}
	}

	var cmds []string
	for _, part := range strings.Split(text, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			cmds = append(cmds, part)
		}
	}

	return cmds
}

func firstWord(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}

	return s
}
