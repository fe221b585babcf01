// Package session keeps the parse state of one document between edits.
//
// A Session remembers the last tree and the fragments cut from it. Each
// batch of edits moves the fragments past the changed ranges so the next
// parse only has to look at text near the edits:
//
//	s := session.New()
//	s.Parse("Процедура А()\nКонецПроцедуры")
//	tree := s.ApplyEdits(newText, edits)
//
// A Session is not safe for concurrent use.
package session

import (
	"github.com/alkoleft/lezer-bsl/bsl/keyword"
	"github.com/alkoleft/lezer-bsl/bsl/parser"
)

// Option configures a Session.
type Option func(*options)

type options struct {
	classifier      parser.SpecializeFunc
	caseInsensitive bool
	comments        bool
	minGap          int
}

// WithClassifier replaces the identifier specializer outright. It takes
// precedence over the case-insensitive keyword table.
func WithClassifier(fn parser.SpecializeFunc) Option {
	return func(o *options) {
		o.classifier = fn
	}
}

// WithCaseSensitiveKeywords keeps the grammar's own specializer, which only
// accepts canonical keyword spellings.
func WithCaseSensitiveKeywords() Option {
	return func(o *options) {
		o.caseInsensitive = false
	}
}

// WithComments keeps comments in the trees.
func WithComments() Option {
	return func(o *options) {
		o.comments = true
	}
}

// WithMinGap sets the smallest unchanged stretch between edits that is
// kept for reuse.
func WithMinGap(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minGap = n
		}
	}
}

// Stats counts the parses a Session has run.
type Stats struct {
	FullParses        int
	IncrementalParses int
	RejectedBatches   int
	ReusedNodes       int
}

// Session holds the last tree of one document and the fragments that can
// be reused from it.
type Session struct {
	parser          *parser.Parser
	caseInsensitive bool
	minGap          int

	tree      *parser.Tree
	fragments []parser.TreeFragment
	stats     Stats
}

// New returns a Session with case-insensitive keywords and the default
// reuse gap.
func New(opts ...Option) *Session {
	o := options{caseInsensitive: true, minGap: parser.DefaultMinGap}
	for _, opt := range opts {
		opt(&o)
	}

	var popts []parser.Option
	if o.comments {
		popts = append(popts, parser.WithComments())
	}
	p := parser.New(popts...)

	s := &Session{minGap: o.minGap}
	switch {
	case o.classifier != nil:
		p = p.Configure(parser.WithSpecializer(parser.TokenIdent, o.classifier))
	case o.caseInsensitive:
		p, s.caseInsensitive = keyword.Install(p)
	}
	s.parser = p
	return s
}

// Parse parses text from scratch, dropping all earlier state.
func (s *Session) Parse(text string) *parser.Tree {
	s.tree = s.parser.Parse(text)
	s.fragments = parser.AddTree(s.tree, nil)
	s.stats.FullParses++
	return s.tree
}

// ApplyEdits parses text, the document after edits, reusing what it can of
// the last tree. Without an earlier tree it is the same as Parse. A batch
// that does not describe a change from the last tree's text to text, or
// whose edits overlap, is counted as rejected and parsed from scratch.
func (s *Session) ApplyEdits(text string, edits []Edit) *parser.Tree {
	if s.tree == nil {
		return s.Parse(text)
	}
	if err := ValidateEdits(edits, s.tree.Length(), len(text)); err != nil {
		s.stats.RejectedBatches++
		return s.Parse(text)
	}

	fragments := parser.ApplyChanges(s.fragments, ChangedRanges(edits), s.minGap)
	s.tree = s.parser.Parse(text, fragments...)
	s.fragments = parser.AddTree(s.tree, fragments)
	s.stats.IncrementalParses++
	s.stats.ReusedNodes += s.tree.Reused()
	return s.tree
}

// LastTree returns the most recent tree, or nil before the first parse.
func (s *Session) LastTree() *parser.Tree {
	return s.tree
}

// CaseInsensitive reports whether keywords are matched in any case and
// vocabulary. It is false when the grammar did not allow the override.
func (s *Session) CaseInsensitive() bool {
	return s.caseInsensitive
}

// Stats returns the counters accumulated since New.
func (s *Session) Stats() Stats {
	return s.stats
}

// Parser returns the configured parser the session runs.
func (s *Session) Parser() *parser.Parser {
	return s.parser
}
