package spec

import (
	"io"

	verr "github.com/nihei9/cyk/error"
)

type RootNode struct {
	Productions []*ProductionNode
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Pos Position
}

// AlternativeNode is one alternative of a production. An alternative without elements produces
// the empty string.
type AlternativeNode struct {
	Elements []*ElementNode
	Pos      Position
}

// ElementNode is either a reference to a non-terminal (ID) or a terminal literal (Terminal).
type ElementNode struct {
	ID       string
	Terminal string
	Pos      Position
}

func (e *ElementNode) IsTerminal() bool {
	return e.ID == ""
}

// Parse reads a grammar description. The left-hand side of the first production is the start
// symbol.
func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
	errPos    Position
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(error)
		if !ok {
			panic(v)
		}
		retErr = err
	}()
	return p.parseRoot(), nil
}

func (p *parser) raiseSyntaxError(synErr *SyntaxError) {
	panic(&verr.SpecError{
		Cause: synErr,
		Row:   p.errPos.Row,
		Col:   p.errPos.Col,
	})
}

func (p *parser) parseRoot() *RootNode {
	prod := p.parseProduction()
	if prod == nil {
		p.raiseSyntaxError(synErrNoProduction)
	}
	root := &RootNode{
		Productions: []*ProductionNode{prod},
	}
	for {
		prod := p.parseProduction()
		if prod == nil {
			break
		}
		root.Productions = append(root.Productions, prod)
	}
	return root
}

func (p *parser) parseProduction() *ProductionNode {
	if p.consume(tokenKindEOF) {
		return nil
	}
	if !p.consume(tokenKindID) {
		p.raiseSyntaxError(synErrNoProductionName)
	}
	lhs := p.lastTok.text
	lhsPos := p.lastTok.pos
	if !p.consume(tokenKindColon) {
		p.raiseSyntaxError(synErrNoColon)
	}
	alt := p.parseAlternative()
	rhs := []*AlternativeNode{alt}
	for {
		if !p.consume(tokenKindOr) {
			break
		}
		alt := p.parseAlternative()
		rhs = append(rhs, alt)
	}
	if !p.consume(tokenKindSemicolon) {
		p.raiseSyntaxError(synErrNoSemicolon)
	}
	return &ProductionNode{
		LHS: lhs,
		RHS: rhs,
		Pos: lhsPos,
	}
}

func (p *parser) parseAlternative() *AlternativeNode {
	// An empty alternative takes the position of the token following it.
	pos := p.peek().pos
	elems := []*ElementNode{}
	for {
		elem := p.parseElement()
		if elem == nil {
			break
		}
		elems = append(elems, elem)
	}
	return &AlternativeNode{
		Elements: elems,
		Pos:      pos,
	}
}

func (p *parser) parseElement() *ElementNode {
	switch {
	case p.consume(tokenKindID):
		return &ElementNode{
			ID:  p.lastTok.text,
			Pos: p.lastTok.pos,
		}
	case p.consume(tokenKindTerminal):
		return &ElementNode{
			Terminal: p.lastTok.text,
			Pos:      p.lastTok.pos,
		}
	}
	return nil
}

func (p *parser) peek() *token {
	if p.peekedTok == nil {
		tok, err := p.lex.next()
		if err != nil {
			panic(err)
		}
		p.peekedTok = tok
	}
	return p.peekedTok
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.peek()
	p.peekedTok = nil
	p.lastTok = tok
	p.errPos = tok.pos
	if tok.kind == tokenKindInvalid {
		panic(&verr.SpecError{
			Cause:  synErrInvalidToken,
			Detail: tok.text,
			Row:    tok.pos.Row,
			Col:    tok.pos.Col,
		})
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}
