package driver

import (
	"fmt"
	"strings"

	"github.com/nihei9/cyk/grammar"
)

// table is the CYK chart. It holds one variable set for each substring of a sentence: the set of
// variables that derive the substring.
//
// The sets are packed into a flat slice grouped by substring length. All substrings of length 1
// come first, then those of length 2, and so on; within a group the sets are ordered by start
// position. For a sentence of length n the group of length l has n-l+1 entries, so the table
// holds n(n+1)/2 sets in total.
type table struct {
	sentenceLen int
	entries     []grammar.VariableSet
}

func newTable(sentenceLen int) *table {
	if sentenceLen < 0 {
		panic(fmt.Errorf("a sentence length must be a non-negative integer: %v", sentenceLen))
	}

	entries := make([]grammar.VariableSet, arithmeticSum(1, sentenceLen, sentenceLen))
	for i := range entries {
		entries[i] = grammar.VariableSet{}
	}
	return &table{
		sentenceLen: sentenceLen,
		entries:     entries,
	}
}

// arithmeticSum returns the sum of an arithmetic progression having count terms from start to end.
func arithmeticSum(start, end, count int) int {
	// ceil((start + end) * count / 2)
	return ((start+end)*count + 1) / 2
}

// address maps a substring [start, start+length) to an index of the entries. It panics when the
// substring is out of the sentence; the recognizer never asks for such a substring.
func (t *table) address(start, length int) int {
	if start < 0 || length < 1 || start+length > t.sentenceLen {
		panic(fmt.Errorf("a substring is out of the sentence; start: %v, length: %v, sentence length: %v", start, length, t.sentenceLen))
	}

	// The group of length l starts after l-1 groups whose sizes decrease by one from n, so it is
	// the rectangle n(l-1) minus the triangle 0 + 1 + ... + (l-2).
	base := 0
	if length >= 2 {
		base = t.sentenceLen*(length-1) - arithmeticSum(0, length-2, length-1)
	}
	return base + start
}

// entry returns the set of variables deriving the substring [start, start+length). The caller
// can add variables to the returned set.
func (t *table) entry(start, length int) grammar.VariableSet {
	return t.entries[t.address(start, length)]
}

// String formats the table one line per substring length, from length 1 at the top to the whole
// sentence at the bottom.
func (t *table) String() string {
	if t.sentenceLen == 0 {
		return ""
	}

	cells := make([]string, len(t.entries))
	width := 0
	for i, e := range t.entries {
		cells[i] = e.String()
		if w := len([]rune(cells[i])); w > width {
			width = w
		}
	}

	var lines []string
	i := 0
	for count := t.sentenceLen; count > 0; count-- {
		var b strings.Builder
		for j, c := range cells[i : i+count] {
			if j > 0 {
				b.WriteString(" | ")
			}
			fmt.Fprintf(&b, "%*s", width, c)
		}
		lines = append(lines, b.String())
		i += count
	}

	lineWidth := len([]rune(lines[0]))
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[ %-*s ]", lineWidth, line)
	}
	return b.String()
}
