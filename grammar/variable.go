package grammar

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Variable is a non-terminal symbol of a grammar.
type Variable string

// Start is the start symbol of every grammar.
// The symbol name contains `<` and `>` to avoid conflicting with user-defined symbols.
const Start = Variable("<start>")

func (v Variable) String() string {
	return string(v)
}

func (v Variable) IsStart() bool {
	return v == Start
}

// VariableSet is a set of variables. The zero value is not usable; use NewVariableSet.
type VariableSet map[Variable]struct{}

func NewVariableSet(vs ...Variable) VariableSet {
	s := make(VariableSet, len(vs))
	for _, v := range vs {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v and reports whether the set grew.
func (s VariableSet) Add(v Variable) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

func (s VariableSet) Contains(v Variable) bool {
	_, ok := s[v]
	return ok
}

// Merge adds all members of t to s and returns the number of new members.
func (s VariableSet) Merge(t VariableSet) int {
	n := 0
	for v := range t {
		if s.Add(v) {
			n++
		}
	}
	return n
}

func (s VariableSet) Clone() VariableSet {
	c := make(VariableSet, len(s))
	for v := range s {
		c[v] = struct{}{}
	}
	return c
}

// Sorted returns the members in ascending order.
func (s VariableSet) Sorted() []Variable {
	vs := maps.Keys(s)
	slices.Sort(vs)
	return vs
}

func (s VariableSet) String() string {
	if len(s) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{")
	for i, v := range s.Sorted() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteString("}")
	return b.String()
}
