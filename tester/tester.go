package tester

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/cyk/driver"
	"github.com/nihei9/cyk/grammar"
	tspec "github.com/nihei9/cyk/spec/test"
)

type TestResult struct {
	TestCasePath string
	Error        error
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "

		msgLines := strings.Split(r.Error.Error(), "\n")
		return fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

type Tester struct {
	Grammar *grammar.Grammar[string]
	Cases   []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	ls, err := driver.CompileLexicalSpec(t.Grammar)
	if err != nil {
		rs := make([]*TestResult, len(t.Cases))
		for i, c := range t.Cases {
			rs[i] = &TestResult{
				TestCasePath: c.FilePath,
				Error:        err,
			}
		}
		return rs
	}

	r := driver.NewRecognizer(t.Grammar)
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(r, ls, c))
	}
	return rs
}

func runTest(r *driver.Recognizer[string], ls *driver.LexicalSpec, c *TestCaseWithMetadata) *TestResult {
	terms, err := driver.Tokenize(ls, bytes.NewReader(c.TestCase.Source))
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	verdict := tspec.VerdictReject
	if r.Recognize(terms) {
		verdict = tspec.VerdictAccept
	}
	if verdict != c.TestCase.Verdict {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("unexpected verdict: expected %v but got %v", c.TestCase.Verdict, verdict),
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}
