package grammar

import (
	"errors"
	"testing"
)

func TestNewGrammar(t *testing.T) {
	term := NewTerminalProduction[rune]
	pair := NewPairProduction[rune]

	tests := []struct {
		caption  string
		prods    []Production[rune]
		cause    error
		variable Variable
	}{
		{
			caption: "a grammar having a start production is valid",
			prods: []Production[rune]{
				term(Start, 'a'),
			},
		},
		{
			caption: "a grammar whose variables are all defined is valid",
			prods: []Production[rune]{
				pair(Start, "A", "B"),
				pair(Start, "A", "C"),
				pair("A", "B", "A"),
				term("A", 'a'),
				pair("B", "C", "C"),
				term("B", 'b'),
				pair("C", "A", "B"),
				term("C", 'c'),
			},
		},
		{
			caption: "the start symbol can appear on a right-hand side",
			prods: []Production[rune]{
				pair(Start, Start, Start),
				term(Start, 'a'),
			},
		},
		{
			caption: "the start symbol can produce the empty string",
			prods: []Production[rune]{
				NewEmptyProduction[rune](),
			},
		},
		{
			caption: "a grammar must have a start production",
			prods: []Production[rune]{
				term("A", 'a'),
			},
			cause: errNoStartProduction,
		},
		{
			caption: "an empty production set is malformed",
			prods:   nil,
			cause:   errNoStartProduction,
		},
		{
			caption: "a variable appearing only on the left of a pair must be defined",
			prods: []Production[rune]{
				pair(Start, "A", "B"),
				term("B", 'b'),
			},
			cause:    errUndefinedVariable,
			variable: "A",
		},
		{
			caption: "a variable appearing only on the right of a pair must be defined",
			prods: []Production[rune]{
				pair(Start, "A", "B"),
				term("A", 'a'),
			},
			cause:    errUndefinedVariable,
			variable: "B",
		},
		{
			caption: "the smallest undefined variable is reported",
			prods: []Production[rune]{
				pair(Start, "Z", "Y"),
				pair(Start, "X", "Z"),
			},
			cause:    errUndefinedVariable,
			variable: "X",
		},
		{
			caption: "only the start symbol can produce the empty string",
			prods: []Production[rune]{
				term(Start, 'a'),
				{LHS: "A", RHS: EmptyRight[rune]()},
			},
			cause:    errEmptyNonStart,
			variable: "A",
		},
		{
			caption: "a zero right-hand side is malformed",
			prods: []Production[rune]{
				{LHS: Start},
			},
			cause:    errInvalidRightSide,
			variable: Start,
		},
		{
			caption: "a left-hand side cannot be empty",
			prods: []Production[rune]{
				term("", 'a'),
			},
			cause: errInvalidLeftSide,
		},
		{
			caption: "a pair cannot contain an empty variable",
			prods: []Production[rune]{
				pair(Start, "", "A"),
			},
			cause:    errInvalidRightSymbol,
			variable: Start,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g, err := NewGrammar(tt.prods)
			if tt.cause == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if g == nil {
					t.Fatal("a grammar must be non-nil")
				}
				return
			}

			if g != nil {
				t.Fatal("a grammar must be nil when an error occurs")
			}
			if !errors.Is(err, ErrMalformedGrammar) {
				t.Fatalf("an error must match ErrMalformedGrammar: %v", err)
			}
			if !errors.Is(err, tt.cause) {
				t.Fatalf("unexpected cause; want: %v, got: %v", tt.cause, err)
			}
			var mErr *MalformedGrammarError
			if !errors.As(err, &mErr) {
				t.Fatalf("unexpected error type: %T", err)
			}
			if mErr.Variable != tt.variable {
				t.Fatalf("unexpected variable; want: %v, got: %v", tt.variable, mErr.Variable)
			}
		})
	}
}

func TestGrammar_ReverseLookup(t *testing.T) {
	g, err := NewGrammar([]Production[rune]{
		NewPairProduction[rune](Start, "A", "B"),
		NewPairProduction[rune](Start, "B", "C"),
		NewPairProduction[rune]("A", "B", "A"),
		NewTerminalProduction[rune]("A", 'a'),
		NewPairProduction[rune]("B", "C", "C"),
		NewTerminalProduction[rune]("B", 'b'),
		NewPairProduction[rune]("C", "A", "B"),
		NewTerminalProduction[rune]("C", 'a'),
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption  string
		rhs      Right[rune]
		expected VariableSet
	}{
		{
			caption:  "a terminal produced by two variables",
			rhs:      TerminalRight('a'),
			expected: NewVariableSet("A", "C"),
		},
		{
			caption:  "a terminal produced by one variable",
			rhs:      TerminalRight('b'),
			expected: NewVariableSet("B"),
		},
		{
			caption:  "a pair produced by two variables",
			rhs:      PairRight[rune]("A", "B"),
			expected: NewVariableSet(Start, "C"),
		},
		{
			caption:  "the order of a pair matters",
			rhs:      PairRight[rune]("B", "A"),
			expected: NewVariableSet("A"),
		},
		{
			caption:  "an unknown terminal yields the empty set",
			rhs:      TerminalRight('z'),
			expected: NewVariableSet(),
		},
		{
			caption:  "an unknown pair yields the empty set",
			rhs:      PairRight[rune]("A", "A"),
			expected: NewVariableSet(),
		},
		{
			caption:  "the empty string yields the empty set without an empty production",
			rhs:      EmptyRight[rune](),
			expected: NewVariableSet(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			testVariableSet(t, g.ReverseLookup(tt.rhs), tt.expected)

			actual := NewVariableSet()
			g.ForEachProducer(tt.rhs, func(v Variable) {
				actual.Add(v)
			})
			testVariableSet(t, actual, tt.expected)
		})
	}

	t.Run("a result of the reverse lookup does not alias the grammar", func(t *testing.T) {
		vs := g.ReverseLookup(TerminalRight('b'))
		vs.Add("X")
		testVariableSet(t, g.ReverseLookup(TerminalRight('b')), NewVariableSet("B"))
	})
}

func TestGrammar_IsEmptyDerivable(t *testing.T) {
	tests := []struct {
		caption  string
		prods    []Production[string]
		expected bool
	}{
		{
			caption: "a grammar without an empty production",
			prods: []Production[string]{
				NewTerminalProduction(Start, "a"),
			},
			expected: false,
		},
		{
			caption: "a grammar with an empty production",
			prods: []Production[string]{
				NewTerminalProduction(Start, "a"),
				NewEmptyProduction[string](),
			},
			expected: true,
		},
		{
			caption: "a grammar whose only production is the empty production",
			prods: []Production[string]{
				NewEmptyProduction[string](),
			},
			expected: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g, err := NewGrammar(tt.prods)
			if err != nil {
				t.Fatal(err)
			}
			if g.IsEmptyDerivable() != tt.expected {
				t.Fatalf("unexpected result; want: %v, got: %v", tt.expected, !tt.expected)
			}
		})
	}
}

func TestGrammar_Queries(t *testing.T) {
	g, err := NewGrammar([]Production[string]{
		NewPairProduction[string](Start, "b", "a"),
		NewTerminalProduction("b", "y"),
		NewTerminalProduction("a", "x"),
		NewTerminalProduction("a", "y"),
		NewTerminalProduction("a", "x"),
	})
	if err != nil {
		t.Fatal(err)
	}

	prods := g.Productions()
	if len(prods) != 4 {
		t.Fatalf("duplicate productions must be removed; got: %v", prods)
	}
	if prods[0].LHS != Start || prods[3] != NewTerminalProduction("a", "y") {
		t.Fatalf("productions must keep their order; got: %v", prods)
	}

	vars := g.Variables()
	expectedVars := []Variable{Start, "a", "b"}
	if len(vars) != len(expectedVars) {
		t.Fatalf("unexpected variables; want: %v, got: %v", expectedVars, vars)
	}
	for i, v := range expectedVars {
		if vars[i] != v {
			t.Fatalf("unexpected variables; want: %v, got: %v", expectedVars, vars)
		}
	}

	terms := g.Terminals()
	expectedTerms := []string{"y", "x"}
	if len(terms) != len(expectedTerms) || terms[0] != expectedTerms[0] || terms[1] != expectedTerms[1] {
		t.Fatalf("unexpected terminals; want: %v, got: %v", expectedTerms, terms)
	}

	// Mutating the results must not affect the grammar.
	prods[0] = NewTerminalProduction("z", "z")
	if g.Productions()[0].LHS != Start {
		t.Fatal("Productions must return a copy")
	}
}

func testVariableSet(t *testing.T, actual, expected VariableSet) {
	t.Helper()
	if len(actual) != len(expected) {
		t.Fatalf("unexpected variables; want: %v, got: %v", expected, actual)
	}
	for v := range expected {
		if !actual.Contains(v) {
			t.Fatalf("unexpected variables; want: %v, got: %v", expected, actual)
		}
	}
}
