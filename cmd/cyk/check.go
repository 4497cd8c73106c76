package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/nihei9/cyk/driver"
	"github.com/spf13/cobra"
)

var checkFlags = struct {
	source *string
	chars  *bool
	chart  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "check <grammar file path> [sentence]",
		Short: "Check whether a sentence is a member of the language of a grammar",
		Example: `  cyk check grammar.cnf 'b a b'
  cat src | cyk check grammar.cnf --chart`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runCheck,
	}
	checkFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	checkFlags.chars = cmd.Flags().Bool("chars", false, "treat each non-white-space character as a terminal instead of tokenizing the source")
	checkFlags.chart = cmd.Flags().Bool("chart", false, "print the filled table to stderr")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverPanic(&retErr)

	if len(args) > 1 && *checkFlags.source != "" {
		return fmt.Errorf("You cannot pass a sentence and --source at the same time")
	}

	gram, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	var src io.Reader
	switch {
	case len(args) > 1:
		src = strings.NewReader(args[1])
	case *checkFlags.source != "":
		f, err := os.Open(*checkFlags.source)
		if err != nil {
			return fmt.Errorf("Cannot open the source file %s: %w", *checkFlags.source, err)
		}
		defer f.Close()
		src = f
	default:
		src = os.Stdin
	}

	var sentence []string
	if *checkFlags.chars {
		sentence, err = splitIntoChars(src)
		if err != nil {
			return err
		}
	} else {
		ls, err := driver.CompileLexicalSpec(gram)
		if err != nil {
			return err
		}
		sentence, err = driver.Tokenize(ls, src)
		if err != nil {
			return err
		}
	}

	var opts []driver.RecognizerOption
	if *checkFlags.chart {
		opts = append(opts, driver.PrintChart(os.Stderr))
	}
	r := driver.NewRecognizer(gram, opts...)
	fmt.Fprintln(os.Stdout, r.Recognize(sentence))

	return nil
}

func splitIntoChars(src io.Reader) ([]string, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	var chars []string
	for _, c := range string(b) {
		if unicode.IsSpace(c) {
			continue
		}
		chars = append(chars, string(c))
	}
	return chars, nil
}
