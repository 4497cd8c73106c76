package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	verr "github.com/nihei9/cyk/error"
	"github.com/nihei9/cyk/grammar"
	"github.com/nihei9/cyk/spec"
)

// readGrammar reads a grammar description and builds a grammar. Positioned errors are labeled with
// the path so that they can point at the offending line.
func readGrammar(path string) (*grammar.Grammar[string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	gram, err := buildGrammar(f)
	if err != nil {
		var specErrs verr.SpecErrors
		var specErr *verr.SpecError
		switch {
		case errors.As(err, &specErrs):
			for _, e := range specErrs {
				e.FilePath = path
				e.SourceName = path
			}
		case errors.As(err, &specErr):
			specErr.FilePath = path
			specErr.SourceName = path
		}
		return nil, err
	}
	return gram, nil
}

func buildGrammar(f *os.File) (*grammar.Grammar[string], error) {
	ast, err := spec.Parse(f)
	if err != nil {
		return nil, err
	}

	b := grammar.GrammarBuilder{
		AST: ast,
	}
	return b.Build()
}

// recoverPanic turns a panic into an error. Every sub-command defers it so that an unexpected fault
// is reported with a stack trace instead of crashing the process.
func recoverPanic(retErr *error) {
	v := recover()
	if v == nil {
		return
	}
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("an unexpected error occurred: %v", v)
	}
	fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
	*retErr = err
}
