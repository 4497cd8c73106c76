package driver

import (
	"fmt"
	"io"

	log "github.com/golang/glog"
	"github.com/nihei9/cyk/grammar"
	"github.com/nihei9/cyk/spec"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

const (
	lexKindNameWhiteSpace = "white_space"
	lexSpecNameSentence   = "sentence"
)

// LexicalSpec is a compiled lexical specification that splits a text into the terminals of a
// grammar. Each terminal is matched literally; the longest match wins, and between matches of the
// same length the terminal appearing first in the grammar wins. White spaces between terminals are
// skipped.
type LexicalSpec struct {
	spec           *mlspec.CompiledLexSpec
	kindToTerminal []string
	skip           []bool
}

// CompileLexicalSpec compiles a lexical specification recognizing the terminals of gram.
func CompileLexicalSpec(gram *grammar.Grammar[string]) (*LexicalSpec, error) {
	var terms []string
	entries := []*mlspec.LexEntry{}
	for _, term := range gram.Terminals() {
		if term == "" {
			continue
		}
		terms = append(terms, term)
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(fmt.Sprintf("terminal_%v", len(terms))),
			Pattern: mlspec.LexPattern(mlspec.EscapePattern(term)),
		})
	}
	entries = append(entries, &mlspec.LexEntry{
		Kind:    lexKindNameWhiteSpace,
		Pattern: `[\u{0009}\u{000A}\u{000D}\u{0020}]+`,
	})

	clspec, err := spec.CompileLexSpec(&mlspec.LexSpec{
		Name:    lexSpecNameSentence,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot compile the terminals into a lexical specification: %w", err)
	}

	name2Term := make(map[mlspec.LexKindName]string, len(terms))
	for i, term := range terms {
		name2Term[mlspec.LexKindName(fmt.Sprintf("terminal_%v", i+1))] = term
	}
	kindToTerminal := make([]string, len(clspec.KindNames))
	skip := make([]bool, len(clspec.KindNames))
	for id, name := range clspec.KindNames {
		if name == lexKindNameWhiteSpace {
			skip[id] = true
			continue
		}
		kindToTerminal[id] = name2Term[name]
	}
	log.V(4).Infof("compiled %d terminals into the lexical specification %v", len(terms), lexSpecNameSentence)

	return &LexicalSpec{
		spec:           clspec,
		kindToTerminal: kindToTerminal,
		skip:           skip,
	}, nil
}

// Token is a terminal read from a text. Row and Col are 0-based.
type Token struct {
	Terminal string
	Lexeme   string
	Row      int
	Col      int

	// Invalid is true when the lexeme matches no terminal. Its Terminal is the lexeme itself.
	Invalid bool
	EOF     bool
}

type TokenStream struct {
	ls  *LexicalSpec
	lex *mldriver.Lexer
}

func NewTokenStream(ls *LexicalSpec, src io.Reader) (*TokenStream, error) {
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(ls.spec), src)
	if err != nil {
		return nil, err
	}
	return &TokenStream{
		ls:  ls,
		lex: lex,
	}, nil
}

// Next returns the next token skipping white spaces. At the end of the text it returns a token
// whose EOF is true.
func (s *TokenStream) Next() (*Token, error) {
	for {
		tok, err := s.lex.Next()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.EOF:
			return &Token{
				Row: tok.Row,
				Col: tok.Col,
				EOF: true,
			}, nil
		case tok.Invalid:
			return &Token{
				Terminal: string(tok.Lexeme),
				Lexeme:   string(tok.Lexeme),
				Row:      tok.Row,
				Col:      tok.Col,
				Invalid:  true,
			}, nil
		case s.ls.skip[tok.KindID]:
			continue
		}
		return &Token{
			Terminal: s.ls.kindToTerminal[tok.KindID],
			Lexeme:   string(tok.Lexeme),
			Row:      tok.Row,
			Col:      tok.Col,
		}, nil
	}
}

// Tokenize reads src to the end and returns its terminals. Lexemes that match no terminal are
// returned as they are, so that a recognizer rejects the sentence.
func Tokenize(ls *LexicalSpec, src io.Reader) ([]string, error) {
	s, err := NewTokenStream(ls, src)
	if err != nil {
		return nil, err
	}
	var terms []string
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return terms, nil
		}
		terms = append(terms, tok.Terminal)
	}
}
