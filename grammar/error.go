package grammar

import (
	"errors"
	"fmt"
)

// ErrMalformedGrammar matches every error NewGrammar returns.
var ErrMalformedGrammar = errors.New("malformed grammar")

var (
	errNoStartProduction  = errors.New("no production has the start symbol on its left-hand side")
	errUndefinedVariable  = errors.New("a variable on a right-hand side has no production")
	errEmptyNonStart      = errors.New("only the start symbol can produce the empty string")
	errInvalidRightSide   = errors.New("a right-hand side must be a terminal, a pair of variables, or empty")
	errInvalidLeftSide    = errors.New("a left-hand side must be a non-empty variable")
	errInvalidRightSymbol = errors.New("a variable on a right-hand side must be non-empty")
)

// MalformedGrammarError reports a production set that violates the invariants of a CNF grammar.
type MalformedGrammarError struct {
	Cause    error
	Variable Variable
}

func (e *MalformedGrammarError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("%v: %v: %v", ErrMalformedGrammar, e.Cause, e.Variable)
	}
	return fmt.Sprintf("%v: %v", ErrMalformedGrammar, e.Cause)
}

func (e *MalformedGrammarError) Unwrap() error {
	return e.Cause
}

func (e *MalformedGrammarError) Is(target error) bool {
	return target == ErrMalformedGrammar
}
