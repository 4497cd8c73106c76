package grammar

import (
	"golang.org/x/exp/slices"
)

// Grammar is an immutable grammar in Chomsky normal form over terminals of type T.
//
// Every production either produces a terminal or a pair of variables. The only exception is
// `<start> → ε`, which lets the start symbol derive the empty string. A Grammar is never mutated
// after NewGrammar returns, so one value can be shared by concurrent recognizers.
type Grammar[T comparable] struct {
	prods []Production[T]

	// reverse maps a right-hand side to the variables having a production that produces it.
	reverse map[Right[T]]VariableSet

	vars  []Variable
	terms []T
}

// NewGrammar validates prods and builds the reverse index. Duplicate productions are ignored.
// It fails with a *MalformedGrammarError when no production has the start symbol on its
// left-hand side, when a variable appearing on a right-hand side has no production, or when a
// variable other than the start symbol produces the empty string.
func NewGrammar[T comparable](prods []Production[T]) (*Grammar[T], error) {
	g := &Grammar[T]{
		reverse: map[Right[T]]VariableSet{},
	}

	seen := map[Production[T]]struct{}{}
	lhsVars := VariableSet{}
	seenTerms := map[T]struct{}{}
	for _, p := range prods {
		if p.LHS == "" {
			return nil, &MalformedGrammarError{
				Cause: errInvalidLeftSide,
			}
		}
		switch p.RHS.kind {
		case rhsKindTerminal:
			if _, ok := seenTerms[p.RHS.term]; !ok {
				seenTerms[p.RHS.term] = struct{}{}
				g.terms = append(g.terms, p.RHS.term)
			}
		case rhsKindPair:
			if p.RHS.left == "" || p.RHS.right == "" {
				return nil, &MalformedGrammarError{
					Cause:    errInvalidRightSymbol,
					Variable: p.LHS,
				}
			}
		case rhsKindEmpty:
			if !p.LHS.IsStart() {
				return nil, &MalformedGrammarError{
					Cause:    errEmptyNonStart,
					Variable: p.LHS,
				}
			}
		default:
			return nil, &MalformedGrammarError{
				Cause:    errInvalidRightSide,
				Variable: p.LHS,
			}
		}

		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		g.prods = append(g.prods, p)
		lhsVars.Add(p.LHS)
	}

	if !lhsVars.Contains(Start) {
		return nil, &MalformedGrammarError{
			Cause: errNoStartProduction,
		}
	}

	// Report the smallest undefined variable so that the error does not depend on the order of
	// the productions.
	undefined := VariableSet{}
	for _, p := range g.prods {
		if !p.RHS.IsPair() {
			continue
		}
		if !lhsVars.Contains(p.RHS.left) {
			undefined.Add(p.RHS.left)
		}
		if !lhsVars.Contains(p.RHS.right) {
			undefined.Add(p.RHS.right)
		}
	}
	if len(undefined) > 0 {
		return nil, &MalformedGrammarError{
			Cause:    errUndefinedVariable,
			Variable: undefined.Sorted()[0],
		}
	}

	for _, p := range g.prods {
		lhss, ok := g.reverse[p.RHS]
		if !ok {
			lhss = VariableSet{}
			g.reverse[p.RHS] = lhss
		}
		lhss.Add(p.LHS)
	}
	g.vars = lhsVars.Sorted()

	return g, nil
}

// ReverseLookup returns the variables having a production that produces rhs. The returned set is
// a copy; it is empty when no production produces rhs.
func (g *Grammar[T]) ReverseLookup(rhs Right[T]) VariableSet {
	lhss, ok := g.reverse[rhs]
	if !ok {
		return VariableSet{}
	}
	return lhss.Clone()
}

// ForEachProducer calls fn for every variable having a production that produces rhs. Unlike
// ReverseLookup, it does not allocate.
func (g *Grammar[T]) ForEachProducer(rhs Right[T], fn func(v Variable)) {
	for v := range g.reverse[rhs] {
		fn(v)
	}
}

// IsEmptyDerivable reports whether the grammar has the production `<start> → ε`.
func (g *Grammar[T]) IsEmptyDerivable() bool {
	_, ok := g.reverse[EmptyRight[T]()]
	return ok
}

// Productions returns the productions in the order they were passed to NewGrammar, without
// duplicates.
func (g *Grammar[T]) Productions() []Production[T] {
	return slices.Clone(g.prods)
}

// Variables returns the variables appearing on left-hand sides in ascending order.
func (g *Grammar[T]) Variables() []Variable {
	return slices.Clone(g.vars)
}

// Terminals returns the terminals in order of first appearance.
func (g *Grammar[T]) Terminals() []T {
	return slices.Clone(g.terms)
}
