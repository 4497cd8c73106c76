package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

type Verdict string

const (
	VerdictAccept = Verdict("accept")
	VerdictReject = Verdict("reject")
)

func (v Verdict) String() string {
	return string(v)
}

// TestCase is a sentence and the verdict a grammar must give it. A test case file consists of three
// parts separated by lines of three or more hyphens: a description, a source, and a verdict.
//
//	Test description
//	---
//	b a b
//	---
//	accept
type TestCase struct {
	Description string
	Source      []byte
	Verdict     Verdict
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	lineOffset := parts[0].lineCount + parts[1].lineCount + 2
	verdict, err := parseVerdict(parts[2].buf, lineOffset)
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Verdict:     verdict,
	}, nil
}

func parseVerdict(src []byte, lineOffset int) (Verdict, error) {
	var verdict Verdict
	s := bufio.NewScanner(bytes.NewReader(src))
	row := lineOffset
	for s.Scan() {
		row++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if verdict != "" {
			return "", fmt.Errorf("%v: a verdict must be a single word", row)
		}
		switch v := Verdict(line); v {
		case VerdictAccept, VerdictReject:
			verdict = v
		default:
			return "", fmt.Errorf("%v: a verdict must be '%v' or '%v': %v", row, VerdictAccept, VerdictReject, line)
		}
	}
	if err := s.Err(); err != nil {
		return "", err
	}
	if verdict == "" {
		return "", fmt.Errorf("a verdict is missing")
	}
	return verdict, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}
