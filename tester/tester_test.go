package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nihei9/cyk/grammar"
	"github.com/nihei9/cyk/spec"
	tspec "github.com/nihei9/cyk/spec/test"
)

const grammarSrcABC = `
s : a b | a c ;
a : b a | 'a' ;
b : c c | 'b' ;
c : a b | 'c' ;
`

func genGrammar(t *testing.T, src string) *grammar.Grammar[string] {
	t.Helper()
	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b := grammar.GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestTester_Run(t *testing.T) {
	grammarSrcEmpty := `
s : a a | ;
a : 'a' ;
`

	tests := []struct {
		grammarSrc string
		testSrc    string
		error      bool
	}{
		{
			grammarSrc: grammarSrcABC,
			testSrc: `
Test
---
b a b
---
accept
`,
		},
		{
			grammarSrc: grammarSrcABC,
			testSrc: `
Test
---
ccab
---
accept
`,
		},
		{
			grammarSrc: grammarSrcABC,
			testSrc: `
Test
---
a b c
---
reject
`,
		},
		{
			grammarSrc: grammarSrcABC,
			testSrc: `
Test
---
a ? b
---
reject
`,
		},
		{
			grammarSrc: grammarSrcABC,
			testSrc: `
Test
---
a b c
---
accept
`,
			error: true,
		},
		{
			grammarSrc: grammarSrcABC,
			testSrc: `
Test
---
---
reject
`,
		},
		{
			grammarSrc: grammarSrcEmpty,
			testSrc: `
Test
---
---
accept
`,
		},
		{
			grammarSrc: grammarSrcEmpty,
			testSrc: `
Test
---
a
---
accept
`,
			error: true,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			g := genGrammar(t, tt.grammarSrc)
			c, err := tspec.ParseTestCase(strings.NewReader(tt.testSrc))
			if err != nil {
				t.Fatal(err)
			}
			tester := &Tester{
				Grammar: g,
				Cases: []*TestCaseWithMetadata{
					{
						TestCase: c,
					},
				},
			}
			rs := tester.Run()
			if tt.error {
				errOccurred := false
				for _, r := range rs {
					if r.Error != nil {
						errOccurred = true
					}
				}
				if !errOccurred {
					t.Fatal("this test must fail, but it passed")
				}
			} else {
				for _, r := range rs {
					if r.Error != nil {
						t.Fatalf("unexpected error occurred: %v", r.Error)
					}
				}
			}
		})
	}
}

func TestListTestCases(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		err := os.MkdirAll(filepath.Dir(path), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(path, []byte(src), 0600)
		if err != nil {
			t.Fatal(err)
		}
		return path
	}
	write("accept.txt", "Accept\n---\nab\n---\naccept\n")
	write("nested/reject.txt", "Reject\n---\nba\n---\nreject\n")
	broken := write("nested/broken.txt", "Broken\n---\nab\n")

	cs := ListTestCases(dir)
	if len(cs) != 3 {
		t.Fatalf("unexpected test case count; want: 3, got: %v", len(cs))
	}
	var brokenCase *TestCaseWithMetadata
	var valid []*TestCaseWithMetadata
	for _, c := range cs {
		if c.FilePath == broken {
			brokenCase = c
			continue
		}
		valid = append(valid, c)
	}
	if brokenCase == nil || brokenCase.Error == nil {
		t.Fatalf("a broken test case must have an error")
	}
	for _, c := range valid {
		if c.Error != nil {
			t.Fatalf("unexpected error: %v", c.Error)
		}
	}

	tester := &Tester{
		Grammar: genGrammar(t, grammarSrcABC),
		Cases:   valid,
	}
	for _, r := range tester.Run() {
		if r.Error != nil {
			t.Fatalf("unexpected failure: %v", r)
		}
		if !strings.HasPrefix(r.String(), "Passed ") {
			t.Fatalf("unexpected result: %v", r)
		}
	}

	missing := ListTestCases(filepath.Join(dir, "missing"))
	if len(missing) != 1 || missing[0].Error == nil {
		t.Fatalf("a missing path must yield an error")
	}
}

func TestTestResult_String(t *testing.T) {
	r := &TestResult{
		TestCasePath: "test.txt",
		Error:        fmt.Errorf("foo\nbar"),
	}
	expected := "Failed test.txt:\n    foo\n    bar"
	if s := r.String(); s != expected {
		t.Fatalf("unexpected string; want: %q, got: %q", expected, s)
	}
}
