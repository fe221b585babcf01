// Package workspace serves BSL documents to editors over the Language Server
// Protocol. Every open document keeps its own parse session, so edits are
// reparsed incrementally.
package workspace

import (
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/alkoleft/lezer-bsl/bsl/highlight"
	"github.com/alkoleft/lezer-bsl/bsl/session"
)

const lsName = "bsl"

// TokenTypes is the semantic token legend. Highlight tags map onto it
// through tokenTypeIndex.
var TokenTypes = []string{
	"keyword", "variable", "function", "property", "class", "type",
	"number", "string", "comment", "operator", "macro", "modifier",
	"decorator", "label",
}

var tokenTypeIndex = map[highlight.Tag]protocol.UInteger{
	highlight.TagDefinitionKeyword:     0,
	highlight.TagKeyword:               0,
	highlight.TagControlKeyword:        0,
	highlight.TagBool:                  0,
	highlight.TagNull:                  0,
	highlight.TagVariableName:          1,
	highlight.TagFunctionName:          2,
	highlight.TagPropertyName:          3,
	highlight.TagClassName:             4,
	highlight.TagTypeName:              5,
	highlight.TagNumber:                6,
	highlight.TagString:                7,
	highlight.TagLiteral:               7,
	highlight.TagLineComment:           8,
	highlight.TagOperator:              9,
	highlight.TagArithmeticOperator:    9,
	highlight.TagCompareOperator:       9,
	highlight.TagDefinitionOperator:    9,
	highlight.TagProcessingInstruction: 10,
	highlight.TagModifier:              11,
	highlight.TagAnnotation:            12,
	highlight.TagLabelName:             13,
}

type Options struct {
	Diagnostics    bool
	SemanticTokens bool
	Folding        bool
	// Session options apply to every opened document.
	Session []session.Option
}

func DefaultOptions() Options {
	return Options{Diagnostics: true, SemanticTokens: true, Folding: true}
}

type Server struct {
	opts    Options
	version string
	handler protocol.Handler
	server  *server.Server
	log     commonlog.Logger

	mu   sync.Mutex
	docs map[string]*Document
}

func NewServer(version string, opts Options) *Server {
	s := &Server{
		opts:    opts,
		version: version,
		log:     commonlog.GetLogger("bsl.workspace"),
		docs:    make(map[string]*Document),
	}

	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
	}
	if opts.Folding {
		s.handler.TextDocumentFoldingRange = s.textDocumentFoldingRange
	}
	if opts.SemanticTokens {
		s.handler.TextDocumentSemanticTokensFull = s.textDocumentSemanticTokensFull
	}

	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

// Document returns the open document with the given URI, or nil.
func (s *Server) Document(uri string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[uri]
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindIncremental),
	}
	if s.opts.SemanticTokens {
		capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
			Legend: protocol.SemanticTokensLegend{
				TokenTypes:     TokenTypes,
				TokenModifiers: []string{},
			},
			Full: true,
		}
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) open(uri string, version int32, text string) *Document {
	doc := NewDocument(uri, version, text, s.opts.Session...)
	if !doc.CaseInsensitive() {
		s.log.Warning("keywords are matched case-sensitively", "uri", uri)
	}
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	doc := s.open(item.URI, item.Version, item.Text)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.Document(params.TextDocument.URI)
	if doc == nil {
		s.log.Warning("change for a document that is not open", "uri", params.TextDocument.URI)
		return nil
	}
	version := params.TextDocument.Version
	if err := applyChanges(doc, version, params.ContentChanges); err != nil {
		s.log.Errorf("%s", err)
		doc.Replace(version, doc.Text())
	}
	s.publishDiagnostics(ctx, doc)
	return nil
}

// applyChanges applies content changes in order. Each change is relative to
// the text left by the one before it.
func applyChanges(doc *Document, version int32, changes []any) error {
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				doc.Replace(version, c.Text)
				continue
			}
			if err := doc.Change(version, *c.Range, c.Text); err != nil {
				return err
			}
		case protocol.TextDocumentContentChangeEventWhole:
			doc.Replace(version, c.Text)
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()
	if s.opts.Diagnostics {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         params.TextDocument.URI,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, doc *Document) {
	if !s.opts.Diagnostics {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: doc.Diagnostics(),
	})
}

func (s *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.Document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return doc.Symbols(), nil
}

func (s *Server) textDocumentFoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	doc := s.Document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return doc.FoldingRanges(), nil
}

func (s *Server) textDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.Document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return &protocol.SemanticTokens{Data: doc.SemanticTokens()}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
