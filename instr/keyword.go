// Package instr splits FLOW-MATIC operations into sub-commands and decodes
// each sub-command into a typed instruction.
package instr

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Keyword is the leading word of a sub-command.
type Keyword int

// Recognized keywords.
const (
	KwInput Keyword = iota
	KwOutput
	KwHSP
	KwTransfer
	KwCompare
	KwReadItem
	KwWriteItem
	KwMove
	KwJump
	KwStop
	KwTest
	KwSet
	KwRewind
	KwCloseOut
	KwAdd
	KwSubtract
	KwMultiply
	KwDivide
	KwIf
	KwOtherwise
)

var keywordNames = []string{
	KwInput:     "INPUT",
	KwOutput:    "OUTPUT",
	KwHSP:       "HSP",
	KwTransfer:  "TRANSFER",
	KwCompare:   "COMPARE",
	KwReadItem:  "READ-ITEM",
	KwWriteItem: "WRITE-ITEM",
	KwMove:      "MOVE",
	KwJump:      "JUMP",
	KwStop:      "STOP",
	KwTest:      "TEST",
	KwSet:       "SET",
	KwRewind:    "REWIND",
	KwCloseOut:  "CLOSE-OUT",
	KwAdd:       "ADD",
	KwSubtract:  "SUBTRACT",
	KwMultiply:  "MULTIPLY",
	KwDivide:    "DIVIDE",
	KwIf:        "IF",
	KwOtherwise: "OTHERWISE",
}

var keywordsByName = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordNames))
	for kw, name := range keywordNames {
		m[name] = Keyword(kw)
	}
	return m
}()

func (k Keyword) String() string {
	if k < 0 || int(k) >= len(keywordNames) {
		return "UNKNOWN"
	}

	return keywordNames[k]
}

// LookupKeyword maps a word to its keyword.
func LookupKeyword(word string) (Keyword, bool) {
	kw, ok := keywordsByName[word]
	return kw, ok
}

// Keywords returns the names of all recognized keywords.
func Keywords() []string {
	return append([]string(nil), keywordNames...)
}

// Suggest returns the recognized keyword closest to word, or "" when
// nothing is close enough to be a plausible typo.
func Suggest(word string) string {
	word = strings.ToUpper(word)
	if word == "" {
		return ""
	}

	ranks := fuzzy.RankFindFold(word, keywordNames)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", 3
	for _, name := range keywordNames {
		if d := fuzzy.LevenshteinDistance(word, name); d < bestDist {
			best, bestDist = name, d
		}
	}

	return best
}
