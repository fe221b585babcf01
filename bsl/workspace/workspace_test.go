package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/alkoleft/lezer-bsl/bsl/session"
)

func pos(line, char int) protocol.Position {
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

func TestLineIndex(t *testing.T) {
	text := "Пр = 1;\n😀x\r\nend"
	li := newLineIndex(text)

	tests := []struct {
		pos    protocol.Position
		offset int
	}{
		{pos(0, 0), 0},
		{pos(0, 3), 5},
		{pos(1, 0), 10},
		{pos(1, 2), 14},
		{pos(2, 3), len(text)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.offset, li.offset(tt.pos), "offset(%v)", tt.pos)
		assert.Equal(t, tt.pos, li.position(tt.offset), "position(%d)", tt.offset)
	}

	assert.Equal(t, 9, li.offset(pos(0, 99)), "clamps to the line end")
	assert.Equal(t, len(text), li.offset(pos(9, 0)), "clamps to the text end")
}

func TestDocumentChange(t *testing.T) {
	doc := NewDocument("file:///a.bsl", 1, "Процедура А()\nКонецПроцедуры")
	require.NoError(t, doc.Change(2, protocol.Range{Start: pos(0, 10), End: pos(0, 11)}, "Б"))

	assert.Equal(t, "Процедура Б()\nКонецПроцедуры", doc.Text())
	assert.Equal(t, int32(2), doc.Version())
	assert.Equal(t, 1, doc.Stats().IncrementalParses)
	assert.False(t, doc.Tree().HasError())

	require.NoError(t, doc.Change(3, protocol.Range{Start: pos(1, 0), End: pos(1, 0)}, "\tВозврат;\n"))
	assert.Equal(t, "Процедура Б()\n\tВозврат;\nКонецПроцедуры", doc.Text())
	assert.Equal(t, "Module(ProcedureDef(procedure,Identifier,ParamList,ReturnStmt(return),endProcedure))", doc.Tree().String())
}

func TestApplyChanges(t *testing.T) {
	doc := NewDocument("file:///a.bsl", 1, "a = 1;")
	r := protocol.Range{Start: pos(0, 4), End: pos(0, 5)}
	err := applyChanges(doc, 2, []any{
		protocol.TextDocumentContentChangeEvent{Range: &r, Text: "2"},
		protocol.TextDocumentContentChangeEvent{Range: &protocol.Range{Start: pos(0, 0), End: pos(0, 1)}, Text: "bb"},
	})
	require.NoError(t, err)
	assert.Equal(t, "bb = 2;", doc.Text())

	require.NoError(t, applyChanges(doc, 3, []any{protocol.TextDocumentContentChangeEventWhole{Text: "c = 3;"}}))
	assert.Equal(t, "c = 3;", doc.Text())
	assert.Equal(t, 2, doc.Stats().FullParses, "a whole-text change parses from scratch")
}

func TestDiagnostics(t *testing.T) {
	doc := NewDocument("file:///a.bsl", 1, "а = ;\nб = 1;")
	diags := doc.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "expected expression", diags[0].Message)
	assert.Equal(t, protocol.Range{Start: pos(0, 3), End: pos(0, 3)}, diags[0].Range)
	require.NotNil(t, diags[0].Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)

	doc.Replace(2, "а = 1;")
	assert.Empty(t, doc.Diagnostics())
}

func TestFoldingRanges(t *testing.T) {
	src := "#Область Основная\n" +
		"Процедура А()\n" +
		"\tЕсли Б Тогда\n" +
		"\t\tВ();\n" +
		"\tКонецЕсли;\n" +
		"КонецПроцедуры\n" +
		"#КонецОбласти\n"
	doc := NewDocument("file:///a.bsl", 1, src)

	var got [][2]int
	for _, r := range doc.FoldingRanges() {
		got = append(got, [2]int{int(r.StartLine), int(r.EndLine)})
	}
	assert.Equal(t, [][2]int{{1, 5}, {2, 4}, {0, 6}}, got)
}

func TestSymbols(t *testing.T) {
	src := "Перем А Экспорт, Б;\n" +
		"Функция Ф() Экспорт\nКонецФункции\n" +
		"Процедура П()\nКонецПроцедуры"
	doc := NewDocument("file:///a.bsl", 1, src)

	symbols := doc.Symbols()
	require.Len(t, symbols, 4)

	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"А", "Б", "Ф", "П"}, names)
	assert.Equal(t, protocol.SymbolKindVariable, symbols[0].Kind)
	assert.Equal(t, protocol.SymbolKindFunction, symbols[2].Kind)
	assert.Equal(t, protocol.SymbolKindMethod, symbols[3].Kind)
	require.NotNil(t, symbols[0].Detail)
	assert.Nil(t, symbols[1].Detail)
	assert.Equal(t, protocol.Range{Start: pos(1, 8), End: pos(1, 9)}, symbols[2].SelectionRange)
}

func TestSemanticTokens(t *testing.T) {
	doc := NewDocument("file:///a.bsl", 1, "a = 1;\nб = \"x\";")
	assert.Equal(t, []protocol.UInteger{
		0, 0, 1, 1, 0,
		0, 2, 1, 9, 0,
		0, 2, 1, 6, 0,
		1, 0, 1, 1, 0,
		0, 2, 1, 9, 0,
		0, 2, 3, 7, 0,
	}, doc.SemanticTokens())
}

func TestSemanticTokensSplitLines(t *testing.T) {
	doc := NewDocument("file:///a.bsl", 1, "s = \"a\n|b\";")
	data := doc.SemanticTokens()
	require.Len(t, data, 20)
	assert.Equal(t, []protocol.UInteger{0, 2, 2, 7, 0}, data[10:15])
	assert.Equal(t, []protocol.UInteger{1, 0, 4, 7, 0}, data[15:20])
}

func TestServerOptions(t *testing.T) {
	s := NewServer("test", DefaultOptions())
	assert.NotNil(t, s.handler.TextDocumentFoldingRange)
	assert.NotNil(t, s.handler.TextDocumentSemanticTokensFull)

	opts := DefaultOptions()
	opts.Folding = false
	opts.SemanticTokens = false
	opts.Session = []session.Option{session.WithCaseSensitiveKeywords()}
	s = NewServer("test", opts)
	assert.Nil(t, s.handler.TextDocumentFoldingRange)
	assert.Nil(t, s.handler.TextDocumentSemanticTokensFull)

	doc := s.open("file:///a.bsl", 1, "procedure P()\nendProcedure")
	assert.Same(t, doc, s.Document("file:///a.bsl"))
	assert.False(t, doc.CaseInsensitive())
	assert.Nil(t, s.Document("file:///b.bsl"))
}

func TestTokenTypesCoverTags(t *testing.T) {
	for tag, idx := range tokenTypeIndex {
		assert.Less(t, int(idx), len(TokenTypes), "tag %s", tag)
	}
}
