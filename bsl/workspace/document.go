package workspace

import (
	"fmt"
	"strings"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/alkoleft/lezer-bsl/bsl/highlight"
	"github.com/alkoleft/lezer-bsl/bsl/parser"
	"github.com/alkoleft/lezer-bsl/bsl/session"
)

const diagnosticSource = "bsl"

// Document is one open editor buffer with its parse session.
type Document struct {
	URI string

	mu      sync.Mutex
	version int32
	text    string
	lines   *lineIndex
	session *session.Session
}

func NewDocument(uri string, version int32, text string, opts ...session.Option) *Document {
	d := &Document{URI: uri, session: session.New(opts...)}
	d.Replace(version, text)
	return d
}

func (d *Document) Version() int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

func (d *Document) Tree() *parser.Tree {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.LastTree()
}

func (d *Document) Stats() session.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.Stats()
}

func (d *Document) CaseInsensitive() bool {
	return d.session.CaseInsensitive()
}

// Replace swaps in a whole new text and parses it from scratch.
func (d *Document) Replace(version int32, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.version = version
	d.text = text
	d.lines = newLineIndex(text)
	d.session.Parse(text)
}

// Change replaces the text in r, given against the current text, and
// reparses incrementally.
func (d *Document) Change(version int32, r protocol.Range, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	from, to := d.lines.offset(r.Start), d.lines.offset(r.End)
	edit := session.Edit{Offset: from, RemovedLength: to - from, InsertedText: text}
	next, err := session.Apply(d.text, []session.Edit{edit})
	if err != nil {
		return fmt.Errorf("change %s: %w", d.URI, err)
	}
	d.version = version
	d.text = next
	d.lines = newLineIndex(next)
	d.session.ApplyEdits(next, []session.Edit{edit})
	return nil
}

func (d *Document) Diagnostics() []protocol.Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()

	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource
	diagnostics := []protocol.Diagnostic{}
	for _, n := range d.session.LastTree().Errors() {
		msg := "syntax error"
		if n.Error != nil && n.Error.Message != "" {
			msg = n.Error.Message
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    d.lines.rangeOf(n.From, n.To),
			Severity: &severity,
			Source:   &source,
			Message:  msg,
		})
	}
	return diagnostics
}

var foldable = map[parser.NodeKind]bool{
	parser.KindProcedureDef:    true,
	parser.KindFunctionDef:     true,
	parser.KindIfStmt:          true,
	parser.KindWhileStmt:       true,
	parser.KindForStmt:         true,
	parser.KindTryStmt:         true,
	parser.KindMultilineString: true,
}

// FoldingRanges returns ranges for methods, compound statements, multiline
// strings and #Region blocks that span more than one line.
func (d *Document) FoldingRanges() []protocol.FoldingRange {
	d.mu.Lock()
	defer d.mu.Unlock()

	ranges := []protocol.FoldingRange{}
	add := func(from, to int) {
		start, end := d.lines.position(from), d.lines.position(to)
		if end.Line > start.Line {
			ranges = append(ranges, protocol.FoldingRange{StartLine: start.Line, EndLine: end.Line})
		}
	}

	var regions []int
	d.session.LastTree().Walk(func(n *parser.Node, depth int) bool {
		switch {
		case foldable[n.Kind]:
			add(n.From, n.To)
		case n.Kind == parser.KindPreprocLine:
			switch directive(n.Text(d.text)) {
			case "#область", "#region":
				regions = append(regions, n.From)
			case "#конецобласти", "#endregion":
				if len(regions) > 0 {
					add(regions[len(regions)-1], n.To)
					regions = regions[:len(regions)-1]
				}
			}
		}
		return true
	})
	return ranges
}

func directive(line string) string {
	if fields := strings.Fields(line); len(fields) > 0 {
		return strings.ToLower(fields[0])
	}
	return ""
}

// Symbols lists the module's procedures, functions and variables.
func (d *Document) Symbols() []protocol.DocumentSymbol {
	d.mu.Lock()
	defer d.mu.Unlock()

	symbols := []protocol.DocumentSymbol{}
	for _, n := range d.session.LastTree().Root.Children {
		switch n.Kind {
		case parser.KindProcedureDef, parser.KindFunctionDef:
			kind := protocol.SymbolKindFunction
			if n.Kind == parser.KindProcedureDef {
				kind = protocol.SymbolKindMethod
			}
			if sym, ok := d.symbol(n, n.FirstChildOfKind(parser.KindIdentifier), kind, n.HasKeyword(parser.TokenExport)); ok {
				symbols = append(symbols, sym)
			}
		case parser.KindVarDecl:
			for _, spec := range n.ChildrenOfKind(parser.KindVarSpec) {
				if sym, ok := d.symbol(spec, spec.FirstChildOfKind(parser.KindIdentifier), protocol.SymbolKindVariable, spec.HasKeyword(parser.TokenExport)); ok {
					symbols = append(symbols, sym)
				}
			}
		}
	}
	return symbols
}

func (d *Document) symbol(n, name *parser.Node, kind protocol.SymbolKind, exported bool) (protocol.DocumentSymbol, bool) {
	if name == nil {
		return protocol.DocumentSymbol{}, false
	}
	sym := protocol.DocumentSymbol{
		Name:           name.Text(d.text),
		Kind:           kind,
		Range:          d.lines.rangeOf(n.From, n.To),
		SelectionRange: d.lines.rangeOf(name.From, name.To),
	}
	if exported {
		detail := "export"
		sym.Detail = &detail
	}
	return sym, true
}

// SemanticTokens encodes the highlighted spans as LSP semantic token data.
// Spans crossing a line break are split per line.
func (d *Document) SemanticTokens() []protocol.UInteger {
	d.mu.Lock()
	defer d.mu.Unlock()

	data := []protocol.UInteger{}
	var prevLine, prevChar protocol.UInteger
	for _, span := range highlight.Tokens(d.session.LastTree()) {
		typ, ok := tokenTypeIndex[span.Tag]
		if !ok {
			continue
		}
		for from := span.From; from < span.To; {
			to := span.To
			if nl := strings.IndexByte(d.text[from:to], '\n'); nl >= 0 {
				to = from + nl
			}
			start, end := d.lines.position(from), d.lines.position(to)
			if end.Character > start.Character {
				deltaChar := start.Character
				if start.Line == prevLine {
					deltaChar -= prevChar
				}
				data = append(data, start.Line-prevLine, deltaChar, end.Character-start.Character, typ, 0)
				prevLine, prevChar = start.Line, start.Character
			}
			from = to + 1
		}
	}
	return data
}
