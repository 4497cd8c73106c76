package grammar

import (
	"fmt"
	"strings"

	verr "github.com/nihei9/cyk/error"
	"github.com/nihei9/cyk/spec"
)

// GrammarBuilder converts a grammar description into a Grammar. The first production of the
// description defines the start symbol; every reference to its name denotes Start.
type GrammarBuilder struct {
	AST *spec.RootNode

	startName string
	errs      verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar[string], error) {
	if b.AST == nil || len(b.AST.Productions) == 0 {
		return nil, verr.SpecErrors{
			{
				Cause: semErrNoProduction,
			},
		}
	}

	b.startName = b.AST.Productions[0].LHS

	defined := map[string]struct{}{}
	for _, prod := range b.AST.Productions {
		if strings.HasPrefix(prod.LHS, "<") {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedName,
				Detail: prod.LHS,
				Row:    prod.Pos.Row,
				Col:    prod.Pos.Col,
			})
			continue
		}
		defined[prod.LHS] = struct{}{}
	}

	var prods []Production[string]
	seen := map[Production[string]]struct{}{}
	for _, prod := range b.AST.Productions {
		lhs := b.toVariable(prod.LHS)
		for _, alt := range prod.RHS {
			p, ok := b.genProduction(lhs, alt, defined)
			if !ok {
				continue
			}
			if _, ok := seen[p]; ok {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrDuplicateProduction,
					Detail: fmt.Sprintf("%v → %v", prod.LHS, formatAlternative(alt)),
					Row:    alt.Pos.Row,
					Col:    alt.Pos.Col,
				})
				continue
			}
			seen[p] = struct{}{}
			prods = append(prods, p)
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	return NewGrammar(prods)
}

func (b *GrammarBuilder) genProduction(lhs Variable, alt *spec.AlternativeNode, defined map[string]struct{}) (Production[string], bool) {
	elems := alt.Elements
	switch {
	case len(elems) == 0:
		if !lhs.IsStart() {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrEmptyNonStart,
				Detail: lhs.String(),
				Row:    alt.Pos.Row,
				Col:    alt.Pos.Col,
			})
			return Production[string]{}, false
		}
		return NewEmptyProduction[string](), true
	case len(elems) == 1 && elems[0].IsTerminal():
		return NewTerminalProduction(lhs, elems[0].Terminal), true
	case len(elems) == 2 && !elems[0].IsTerminal() && !elems[1].IsTerminal():
		ok := true
		for _, elem := range elems {
			if _, found := defined[elem.ID]; !found {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrUndefinedSym,
					Detail: elem.ID,
					Row:    elem.Pos.Row,
					Col:    elem.Pos.Col,
				})
				ok = false
			}
		}
		if !ok {
			return Production[string]{}, false
		}
		return NewPairProduction[string](lhs, b.toVariable(elems[0].ID), b.toVariable(elems[1].ID)), true
	}

	b.errs = append(b.errs, &verr.SpecError{
		Cause:  semErrNotCNF,
		Detail: formatAlternative(alt),
		Row:    alt.Pos.Row,
		Col:    alt.Pos.Col,
	})
	return Production[string]{}, false
}

func (b *GrammarBuilder) toVariable(name string) Variable {
	if name == b.startName {
		return Start
	}
	return Variable(name)
}

func formatAlternative(alt *spec.AlternativeNode) string {
	if len(alt.Elements) == 0 {
		return "ε"
	}
	var b strings.Builder
	for i, elem := range alt.Elements {
		if i > 0 {
			b.WriteString(" ")
		}
		if elem.IsTerminal() {
			fmt.Fprintf(&b, "'%v'", elem.Terminal)
		} else {
			b.WriteString(elem.ID)
		}
	}
	return b.String()
}
