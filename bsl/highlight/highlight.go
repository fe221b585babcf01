// Package highlight assigns highlighting tags to the leaves of a syntax tree.
package highlight

import (
	"github.com/alkoleft/lezer-bsl/bsl/parser"
)

type Tag int

const (
	TagNone Tag = iota
	TagNumber
	TagString
	TagLiteral
	TagBool
	TagNull
	TagProcessingInstruction
	TagLineComment
	TagVariableName
	TagFunctionName
	TagDefinitionKeyword
	TagKeyword
	TagControlKeyword
	TagOperator
	TagArithmeticOperator
	TagCompareOperator
	TagDefinitionOperator
	TagClassName
	TagPropertyName
	TagModifier
	TagAnnotation
	TagTypeName
	TagLabelName
)

var tagNames = [...]string{
	TagNone:                  "none",
	TagNumber:                "number",
	TagString:                "string",
	TagLiteral:               "literal",
	TagBool:                  "bool",
	TagNull:                  "null",
	TagProcessingInstruction: "processingInstruction",
	TagLineComment:           "lineComment",
	TagVariableName:          "variableName",
	TagFunctionName:          "function(variableName)",
	TagDefinitionKeyword:     "definitionKeyword",
	TagKeyword:               "keyword",
	TagControlKeyword:        "controlKeyword",
	TagOperator:              "operator",
	TagArithmeticOperator:    "arithmeticOperator",
	TagCompareOperator:       "compareOperator",
	TagDefinitionOperator:    "definitionOperator",
	TagClassName:             "className",
	TagPropertyName:          "propertyName",
	TagModifier:              "modifier",
	TagAnnotation:            "annotation",
	TagTypeName:              "typeName",
	TagLabelName:             "labelName",
}

func (t Tag) String() string {
	if t >= 0 && int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// Tags lists every tag except TagNone in declaration order.
func Tags() []Tag {
	tags := make([]Tag, 0, len(tagNames)-1)
	for t := TagNone + 1; int(t) < len(tagNames); t++ {
		tags = append(tags, t)
	}
	return tags
}

// Span is a tagged byte range of the document.
type Span struct {
	From int
	To   int
	Tag  Tag
}

var keywordTags = map[parser.TokenKind]Tag{
	parser.TokenTrue:      TagBool,
	parser.TokenFalse:     TagBool,
	parser.TokenUndefined: TagNull,
	parser.TokenNull:      TagNull,

	parser.TokenVar:       TagDefinitionKeyword,
	parser.TokenProcedure: TagDefinitionKeyword,
	parser.TokenFunction:  TagDefinitionKeyword,

	parser.TokenEndProcedure:  TagKeyword,
	parser.TokenEndFunction:   TagKeyword,
	parser.TokenNew:           TagKeyword,
	parser.TokenAddHandler:    TagKeyword,
	parser.TokenRemoveHandler: TagKeyword,
	parser.TokenExecute:       TagKeyword,
	parser.TokenAwait:         TagKeyword,

	parser.TokenNot: TagOperator,
	parser.TokenAnd: TagOperator,
	parser.TokenOr:  TagOperator,

	parser.TokenExport: TagModifier,
	parser.TokenAsync:  TagModifier,
	parser.TokenVal:    TagModifier,
}

// KeywordTag returns the tag of a keyword leaf. Keywords without an entry
// of their own steer control flow.
func KeywordTag(kind parser.TokenKind) Tag {
	if tag, ok := keywordTags[kind]; ok {
		return tag
	}
	if kind.IsKeyword() {
		return TagControlKeyword
	}
	return TagNone
}

var leafTags = map[parser.NodeKind]Tag{
	parser.KindNumber:                  TagNumber,
	parser.KindString:                  TagString,
	parser.KindMultilineStringStart:    TagString,
	parser.KindMultilineStringContinue: TagString,
	parser.KindDate:                    TagLiteral,
	parser.KindPreprocLine:             TagProcessingInstruction,
	parser.KindComment:                 TagLineComment,
	parser.KindArithOp:                 TagArithmeticOperator,
	parser.KindCompareOp:               TagCompareOperator,
	parser.KindAssignOp:                TagDefinitionOperator,
	parser.KindTypeName:                TagClassName,
	parser.KindAnnotationType:          TagTypeName,
	parser.KindLabel:                   TagLabelName,
}

// Tokens returns the tagged spans of tree in document order. Spans never
// overlap. Error nodes and punctuation are left untagged.
func Tokens(tree *parser.Tree) []Span {
	var spans []Span
	if tree == nil || tree.Root == nil {
		return spans
	}
	collect(tree.Root, nil, 0, &spans)
	return spans
}

func collect(n, parent *parser.Node, index int, spans *[]Span) {
	if n.IsError() || n.From == n.To {
		return
	}
	if tag := leafTag(n, parent, index); tag != TagNone {
		*spans = append(*spans, Span{From: n.From, To: n.To, Tag: tag})
		return
	}
	if n.Kind == parser.KindAnnotation {
		*spans = append(*spans, Span{From: n.From, To: n.From + 1, Tag: TagAnnotation})
	}
	for i, c := range n.Children {
		collect(c, n, i, spans)
	}
}

func leafTag(n, parent *parser.Node, index int) Tag {
	switch n.Kind {
	case parser.KindKeyword:
		return KeywordTag(n.Keyword)
	case parser.KindIdentifier:
		return identifierTag(parent, index)
	}
	return leafTags[n.Kind]
}

func identifierTag(parent *parser.Node, index int) Tag {
	if parent == nil {
		return TagVariableName
	}
	switch parent.Kind {
	case parser.KindProcedureDef, parser.KindFunctionDef:
		return TagFunctionName
	case parser.KindCallExpr:
		if index == 0 {
			return TagFunctionName
		}
	case parser.KindMemberAccess:
		if index > 0 {
			return TagPropertyName
		}
	}
	return TagVariableName
}
