package spec

import (
	"io"
	"strings"
	"sync"

	verr "github.com/nihei9/cyk/error"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindID        = tokenKind("id")
	tokenKindTerminal  = tokenKind("terminal")
	tokenKindColon     = tokenKind(":")
	tokenKindOr        = tokenKind("|")
	tokenKindSemicolon = tokenKind(";")
	tokenKindEOF       = tokenKind("eof")
	tokenKindInvalid   = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newIDToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindID,
		text: text,
		pos:  pos,
	}
}

func newTerminalToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindTerminal,
		text: text,
		pos:  pos,
	}
}

func newEOFToken() *token {
	return &token{
		kind: tokenKindEOF,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

const (
	lexKindWhiteSpace      = mlspec.LexKindName("white_space")
	lexKindLineComment     = mlspec.LexKindName("line_comment")
	lexKindIdentifier      = mlspec.LexKindName("identifier")
	lexKindTerminal        = mlspec.LexKindName("terminal")
	lexKindEmptyTerminal   = mlspec.LexKindName("empty_terminal")
	lexKindUnclosed        = mlspec.LexKindName("unclosed_terminal")
	lexKindColon           = mlspec.LexKindName("colon")
	lexKindOr              = mlspec.LexKindName("or")
	lexKindSemicolon       = mlspec.LexKindName("semicolon")
	lexSpecNameDescription = "cnf"
)

// The code points U+0027 and U+005C are a quote and a back slash.
var descriptionLexSpec = &mlspec.LexSpec{
	Name: lexSpecNameDescription,
	Entries: []*mlspec.LexEntry{
		{Kind: lexKindWhiteSpace, Pattern: `[\u{0009}\u{000A}\u{000D}\u{0020}]+`},
		{Kind: lexKindLineComment, Pattern: `//[^\u{000A}]*`},
		{Kind: lexKindIdentifier, Pattern: `[A-Za-z_][0-9A-Za-z_]*`},
		{Kind: lexKindTerminal, Pattern: `\u{0027}([^\u{000A}\u{0027}\u{005C}]|\u{005C}[\u{0027}\u{005C}])+\u{0027}`},
		{Kind: lexKindEmptyTerminal, Pattern: `\u{0027}\u{0027}`},
		{Kind: lexKindUnclosed, Pattern: `\u{0027}([^\u{000A}\u{0027}\u{005C}]|\u{005C}[\u{0027}\u{005C}])*`},
		{Kind: lexKindColon, Pattern: `:`},
		{Kind: lexKindOr, Pattern: `\|`},
		{Kind: lexKindSemicolon, Pattern: `;`},
	},
}

var (
	descLexSpecOnce sync.Once
	descLexSpec     *mlspec.CompiledLexSpec
	descLexSpecErr  error
)

func compiledDescriptionLexSpec() (*mlspec.CompiledLexSpec, error) {
	descLexSpecOnce.Do(func() {
		descLexSpec, descLexSpecErr = CompileLexSpec(descriptionLexSpec)
	})
	return descLexSpec, descLexSpecErr
}

type lexer struct {
	s *mlspec.CompiledLexSpec
	d *mldriver.Lexer
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := compiledDescriptionLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

func (l *lexer) next() (*token, error) {
	var tok *mldriver.Token
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return newEOFToken(), nil
		}
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
		}
		switch l.s.KindNames[tok.KindID] {
		case lexKindWhiteSpace, lexKindLineComment:
			continue
		}

		break
	}

	pos := newPosition(tok.Row+1, tok.Col+1)
	switch l.s.KindNames[tok.KindID] {
	case lexKindIdentifier:
		return newIDToken(string(tok.Lexeme), pos), nil
	case lexKindTerminal:
		return newTerminalToken(unquoteTerminal(string(tok.Lexeme)), pos), nil
	case lexKindEmptyTerminal:
		return nil, &verr.SpecError{
			Cause: synErrEmptyTerminal,
			Row:   pos.Row,
			Col:   pos.Col,
		}
	case lexKindUnclosed:
		return nil, &verr.SpecError{
			Cause:  synErrUnclosedTerminal,
			Detail: string(tok.Lexeme),
			Row:    pos.Row,
			Col:    pos.Col,
		}
	case lexKindColon:
		return newSymbolToken(tokenKindColon, pos), nil
	case lexKindOr:
		return newSymbolToken(tokenKindOr, pos), nil
	case lexKindSemicolon:
		return newSymbolToken(tokenKindSemicolon, pos), nil
	default:
		return newInvalidToken(string(tok.Lexeme), pos), nil
	}
}

// unquoteTerminal removes the enclosing quotes and interprets the escape sequences \' and \\.
func unquoteTerminal(lexeme string) string {
	s := lexeme[1 : len(lexeme)-1]
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, c := range s {
		if !escaped && c == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(c)
	}
	return b.String()
}
