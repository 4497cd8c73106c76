package driver

import (
	"fmt"
	"io"

	log "github.com/golang/glog"
	"github.com/nihei9/cyk/grammar"
)

type RecognizerOption func(c *recognizerConfig)

type recognizerConfig struct {
	chart io.Writer
}

// PrintChart makes a recognizer write the filled chart to w after each recognition of a
// non-empty sentence.
func PrintChart(w io.Writer) RecognizerOption {
	return func(c *recognizerConfig) {
		c.chart = w
	}
}

// Recognizer decides whether sentences belong to the language of a grammar using the
// Cocke-Younger-Kasami algorithm. A Recognizer keeps no state between recognitions; when it
// doesn't print charts, it can be used by multiple goroutines.
type Recognizer[T comparable] struct {
	gram  *grammar.Grammar[T]
	chart io.Writer

	// observe is called each time the recognizer finishes a cell of the chart.
	observe func(tab *table, start, length int)
}

func NewRecognizer[T comparable](gram *grammar.Grammar[T], opts ...RecognizerOption) *Recognizer[T] {
	c := &recognizerConfig{}
	for _, opt := range opts {
		opt(c)
	}
	return &Recognizer[T]{
		gram:  gram,
		chart: c.chart,
	}
}

// IsValidSentence reports whether gram derives sentence.
func IsValidSentence[T comparable](sentence []T, gram *grammar.Grammar[T]) bool {
	return NewRecognizer(gram).Recognize(sentence)
}

// Recognize reports whether the grammar derives sentence. A terminal the grammar doesn't know
// derives nothing, so a sentence containing it is not recognized.
//
// Recognize runs in O(n^3 |V|^2) time for a sentence of length n, where |V| is the number of
// variables.
func (r *Recognizer[T]) Recognize(sentence []T) bool {
	// The chart cannot represent the empty string.
	if len(sentence) == 0 {
		return r.gram.IsEmptyDerivable()
	}

	n := len(sentence)
	tab := newTable(n)
	log.V(4).Infof("recognizing a sentence of length %d", n)

	// Fill the substrings of length 1 using the productions of the form `A → a`.
	for pos, term := range sentence {
		cell := tab.entry(pos, 1)
		r.gram.ForEachProducer(grammar.TerminalRight(term), func(v grammar.Variable) {
			cell.Add(v)
		})
		r.notify(tab, pos, 1)
	}

	// Fill the longer substrings using the productions of the form `A → B C`. Every cell of
	// length l depends only on cells shorter than l.
	for length := 2; length <= n; length++ {
		for start := 0; start <= n-length; start++ {
			cell := tab.entry(start, length)
			add := func(v grammar.Variable) {
				cell.Add(v)
			}
			for leftLen := 1; leftLen < length; leftLen++ {
				lefts := tab.entry(start, leftLen)
				if len(lefts) == 0 {
					continue
				}
				rights := tab.entry(start+leftLen, length-leftLen)
				for left := range lefts {
					for right := range rights {
						r.gram.ForEachProducer(grammar.PairRight[T](left, right), add)
					}
				}
			}
			r.notify(tab, start, length)
		}
	}

	if r.chart != nil {
		fmt.Fprintf(r.chart, "%v\n", tab)
	}

	return tab.entry(0, n).Contains(grammar.Start)
}

func (r *Recognizer[T]) notify(tab *table, start, length int) {
	log.V(5).Infof("[%d, %d) ← %v", start, start+length, tab.entry(start, length))
	if r.observe == nil {
		return
	}
	r.observe(tab, start, length)
}
