// Package corpus loads parser test cases written as Markdown and checks them
// against a parser.
//
// Every level-two heading starts a case. The case body holds a fenced block
// tagged bsl with the source and a fenced block tagged tree with the
// expected tree in compact form:
//
//	## Assignment
//
//	```bsl
//	А = 1;
//	```
//
//	```tree
//	Module(Assignment(Identifier, AssignOp, Number))
//	```
//
// Whitespace inside the expected tree is ignored.
package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alkoleft/lezer-bsl/bsl/parser"
)

var ErrMalformed = errors.New("malformed corpus")

type Case struct {
	Name     string
	File     string
	Line     int
	Source   string
	Expected string
}

type Result struct {
	Case
	Got    string
	Passed bool
}

// Parse reads the cases of one Markdown document.
func Parse(file string, data []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(data))

	var cases []Case
	var current *Case
	finish := func() error {
		if current == nil {
			return nil
		}
		if current.Expected == "" {
			return fmt.Errorf("%w: %s:%d: case %q has no tree block", ErrMalformed, file, current.Line, current.Name)
		}
		cases = append(cases, *current)
		current = nil
		return nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Heading:
			if n.Level != 2 {
				continue
			}
			if err := finish(); err != nil {
				return nil, err
			}
			current = &Case{
				Name: strings.TrimSpace(string(blockText(n, data))),
				File: file,
				Line: lineOf(n, data),
			}
		case *ast.FencedCodeBlock:
			if current == nil {
				continue
			}
			switch lang := string(n.Language(data)); lang {
			case "bsl":
				current.Source = strings.TrimSuffix(string(blockText(n, data)), "\n")
			case "tree":
				current.Expected = strings.TrimSpace(string(blockText(n, data)))
			}
		}
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

func blockText(n ast.Node, data []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(data))
	}
	return buf.Bytes()
}

func lineOf(n ast.Node, data []byte) int {
	lines := n.Lines()
	if lines.Len() == 0 {
		return 0
	}
	return bytes.Count(data[:lines.At(0).Start], []byte("\n")) + 1
}

// LoadDir reads every .md file in dir, in name order.
func LoadDir(dir string) ([]Case, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("load corpus %s: %w", dir, err)
	}
	sort.Strings(files)

	var cases []Case
	for _, file := range files {
		fileCases, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		cases = append(cases, fileCases...)
	}
	return cases, nil
}

func LoadFile(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return Parse(filepath.Base(path), data)
}

// Run parses every case with parse and compares the compact trees.
func Run(parse func(src string) *parser.Tree, cases []Case) []Result {
	results := make([]Result, len(cases))
	for i, c := range cases {
		got := parse(c.Source).String()
		results[i] = Result{
			Case:   c,
			Got:    got,
			Passed: squash(got) == squash(c.Expected),
		}
	}
	return results
}

func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
