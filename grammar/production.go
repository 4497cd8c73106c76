package grammar

import "fmt"

type rhsKind uint8

const (
	rhsKindNil rhsKind = iota
	rhsKindTerminal
	rhsKindPair
	rhsKindEmpty
)

// Right is the right-hand side of a production in Chomsky normal form. It is either a single
// terminal, a pair of variables, or the empty string. Two Right values are equal when they have
// the same kind and the same symbols, so Right can be used as a map key.
type Right[T comparable] struct {
	kind  rhsKind
	term  T
	left  Variable
	right Variable
}

func TerminalRight[T comparable](term T) Right[T] {
	return Right[T]{
		kind: rhsKindTerminal,
		term: term,
	}
}

func PairRight[T comparable](left, right Variable) Right[T] {
	return Right[T]{
		kind:  rhsKindPair,
		left:  left,
		right: right,
	}
}

func EmptyRight[T comparable]() Right[T] {
	return Right[T]{
		kind: rhsKindEmpty,
	}
}

func (r Right[T]) IsTerminal() bool {
	return r.kind == rhsKindTerminal
}

func (r Right[T]) IsPair() bool {
	return r.kind == rhsKindPair
}

func (r Right[T]) IsEmpty() bool {
	return r.kind == rhsKindEmpty
}

// Terminal returns the terminal of a terminal right-hand side.
func (r Right[T]) Terminal() (T, bool) {
	if r.kind != rhsKindTerminal {
		var zero T
		return zero, false
	}
	return r.term, true
}

// Pair returns the variables of a pair right-hand side.
func (r Right[T]) Pair() (Variable, Variable, bool) {
	if r.kind != rhsKindPair {
		return "", "", false
	}
	return r.left, r.right, true
}

func (r Right[T]) String() string {
	switch r.kind {
	case rhsKindTerminal:
		return fmt.Sprintf("%#v", r.term)
	case rhsKindPair:
		return fmt.Sprintf("%v %v", r.left, r.right)
	case rhsKindEmpty:
		return "ε"
	}
	return "<nil>"
}

// Production is a production rule in Chomsky normal form.
type Production[T comparable] struct {
	LHS Variable
	RHS Right[T]
}

// NewTerminalProduction makes a production `lhs → term`.
func NewTerminalProduction[T comparable](lhs Variable, term T) Production[T] {
	return Production[T]{
		LHS: lhs,
		RHS: TerminalRight(term),
	}
}

// NewPairProduction makes a production `lhs → left right`.
func NewPairProduction[T comparable](lhs, left, right Variable) Production[T] {
	return Production[T]{
		LHS: lhs,
		RHS: PairRight[T](left, right),
	}
}

// NewEmptyProduction makes a production `<start> → ε`.
func NewEmptyProduction[T comparable]() Production[T] {
	return Production[T]{
		LHS: Start,
		RHS: EmptyRight[T](),
	}
}

func (p Production[T]) String() string {
	return fmt.Sprintf("%v → %v", p.LHS, p.RHS)
}
