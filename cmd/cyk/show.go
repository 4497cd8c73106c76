package main

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/nihei9/cyk/grammar"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <grammar file path>",
		Short:   "Print a grammar and its reverse index in readable format",
		Example: `  cyk show grammar.cnf`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverPanic(&retErr)

	gram, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	return writeGrammar(os.Stdout, gram)
}

type reverseEntry struct {
	RHS       grammar.Right[string]
	Producers grammar.VariableSet
}

type grammarView struct {
	Variables   []grammar.Variable
	Terminals   []string
	Productions []grammar.Production[string]
	Reverse     []reverseEntry
}

const grammarTemplate = `# Variables

{{ range .Variables -}}
{{ . }}
{{ end }}
# Terminals

{{ range .Terminals -}}
{{ printf "%q" . }}
{{ end }}
# Productions

{{ range $i, $p := .Productions -}}
{{ printf "%4v" $i }} {{ $p }}
{{ end }}
# Reverse Index

{{ range .Reverse -}}
{{ .RHS }} ← {{ .Producers }}
{{ end }}`

func writeGrammar(w io.Writer, gram *grammar.Grammar[string]) error {
	view := &grammarView{
		Variables:   gram.Variables(),
		Terminals:   gram.Terminals(),
		Productions: gram.Productions(),
	}
	seen := map[grammar.Right[string]]struct{}{}
	for _, p := range view.Productions {
		if _, ok := seen[p.RHS]; ok {
			continue
		}
		seen[p.RHS] = struct{}{}
		view.Reverse = append(view.Reverse, reverseEntry{
			RHS:       p.RHS,
			Producers: gram.ReverseLookup(p.RHS),
		})
	}
	slices.SortFunc(view.Reverse, func(a, b reverseEntry) bool {
		return a.RHS.String() < b.RHS.String()
	})

	tmpl, err := template.New("").Parse(grammarTemplate)
	if err != nil {
		return err
	}
	err = tmpl.Execute(w, view)
	if err != nil {
		return fmt.Errorf("Cannot write the grammar: %w", err)
	}
	return nil
}
