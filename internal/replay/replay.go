// Package replay runs edit scripts against a parse session and checks every
// incremental tree against a parse from scratch.
//
// A script is a YAML document:
//
//	source: |
//	  Процедура А()
//	  КонецПроцедуры
//	steps:
//	  - name: rename
//	    edits:
//	      - at: "А()"
//	        remove: 2
//	        insert: "Б"
//	    expect: Module(ProcedureDef(procedure, Identifier, ParamList, endProcedure))
//
// An edit is placed either by a byte offset or by the first occurrence of
// the at text in the document before the step.
package replay

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/alkoleft/lezer-bsl/bsl/parser"
	"github.com/alkoleft/lezer-bsl/bsl/session"
)

var ErrScript = errors.New("bad edit script")

type Script struct {
	Source string `yaml:"source"`
	Steps  []Step `yaml:"steps"`
}

type Step struct {
	Name   string     `yaml:"name"`
	Edits  []EditSpec `yaml:"edits"`
	Expect string     `yaml:"expect"`
}

type EditSpec struct {
	Offset *int   `yaml:"offset"`
	At     string `yaml:"at"`
	Remove int    `yaml:"remove"`
	Insert string `yaml:"insert"`
}

func Parse(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}
	for i, step := range script.Steps {
		for j, e := range step.Edits {
			if (e.Offset == nil) == (e.At == "") {
				return nil, fmt.Errorf("%w: step %d edit %d needs exactly one of offset and at", ErrScript, i+1, j+1)
			}
		}
	}
	return &script, nil
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	script, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}

// Resolve turns the step's edits into session edits against text.
func (s Step) Resolve(text string) ([]session.Edit, error) {
	edits := make([]session.Edit, 0, len(s.Edits))
	for _, e := range s.Edits {
		offset := 0
		if e.Offset != nil {
			offset = *e.Offset
		} else if offset = strings.Index(text, e.At); offset < 0 {
			return nil, fmt.Errorf("%w: text %q not found", ErrScript, e.At)
		}
		edits = append(edits, session.Edit{Offset: offset, RemovedLength: e.Remove, InsertedText: e.Insert})
	}
	return edits, nil
}

type Result struct {
	Step int
	Name string
	Text string
	Tree *parser.Tree
	// Full is the tree of a parse from scratch of the same text.
	Full *parser.Tree
	// Matches reports whether Tree and Full are identical.
	Matches bool
	// Expected is false when the step has an expectation the tree misses.
	Expected bool
	Reused   int
}

// Run parses the script source with s and applies every step in order.
// Steps whose edits do not fit the text fail the run.
func Run(s *session.Session, script *Script) ([]Result, error) {
	text := script.Source
	s.Parse(text)

	results := make([]Result, 0, len(script.Steps))
	for i, step := range script.Steps {
		edits, err := step.Resolve(text)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		next, err := session.Apply(text, edits)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		tree := s.ApplyEdits(next, edits)
		full := s.Parser().Parse(next)
		results = append(results, Result{
			Step:     i + 1,
			Name:     step.Name,
			Text:     next,
			Tree:     tree,
			Full:     full,
			Matches:  tree.Root.Format(true) == full.Root.Format(true),
			Expected: step.Expect == "" || squash(step.Expect) == squash(tree.String()),
			Reused:   tree.Reused(),
		})
		text = next
	}
	return results, nil
}

func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
