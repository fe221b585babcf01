// Package parser provides an incremental, error-tolerant parser for BSL, the
// scripting language of the 1C platform.
//
// # Overview
//
// The parser turns source text into an immutable syntax tree. It is designed
// for editors: malformed input never makes it fail, and after an edit it can
// take unchanged subtrees over from the previous tree instead of parsing
// them again.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (string)   │     │  (tokens)   │     │   (Tree)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                       │      │                ▲
//	                       ▼      ▼                │
//	               ┌──────────┐ ┌────────────┐ ┌─────────────┐
//	               │ literal  │ │ specialize │ │  Fragments  │
//	               │ package  │ │ (keywords) │ │ (old trees) │
//	               └──────────┘ └────────────┘ └─────────────┘
//
// String literals are recognized by package literal. Identifiers go through
// the specializer registered for TokenIdent, which decides whether the text
// is a keyword. The default specializer, LookupKeyword, only knows the
// canonical English spellings; package keyword replaces it with one that
// accepts both vocabularies in any letter case:
//
//	p, ok := keyword.Install(parser.New())
//
// # Trees
//
// Every node covers a byte range [From, To) of the text it was parsed from.
// Keyword leaves are named by their canonical spelling, so
//
//	Процедура Тест()
//	КонецПроцедуры
//
// prints as
//
//	Module(ProcedureDef(procedure,Identifier,ParamList,endProcedure))
//
// Nodes are never changed after a parse returns and may be shared by several
// trees. They carry no parent links; a Cursor keeps the path instead.
//
// # Incremental Parsing
//
// A tree is cut into fragments with AddTree. After an edit, ApplyChanges
// moves the fragments to their new positions and drops the parts an edit
// touched:
//
//	frags := parser.AddTree(tree, nil)
//	frags = parser.ApplyChanges(frags, changes, parser.DefaultMinGap)
//	next := p.Parse(newText, frags...)
//
// At each statement or method boundary the parser looks for an old node of
// the right kind starting at the current token. It is taken over when it has
// no errors, lies inside a fragment and the lexer looked at nothing outside
// that fragment while building it (see Node.LookAhead).
//
// # Error Recovery
//
// The parser never panics on malformed input. Problems become error nodes,
// named "⚠":
//
//   - Missing tokens give a zero-width error node where the token was
//     expected
//   - Unexpected tokens are wrapped in an error node up to the next token
//     that can start a statement
//   - Unterminated string and date literals get a zero-width error node at
//     their end
//
// Every step consumes at least one token, so parsing always terminates.
//
// # Grammar
//
// The accepted language is documented as EBNF in grammar.ebnf. Grammar
// parses and verifies it with golang.org/x/exp/ebnf.
package parser
