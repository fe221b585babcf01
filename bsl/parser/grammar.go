package parser

import (
	_ "embed"
	"strings"

	"golang.org/x/exp/ebnf"
)

// StartProduction is the root production of the grammar document.
const StartProduction = "Module"

//go:embed grammar.ebnf
var grammarSource string

// GrammarSource returns the EBNF text describing the language the parser
// accepts.
func GrammarSource() string {
	return grammarSource
}

// Grammar parses and verifies the EBNF grammar document.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("grammar.ebnf", strings.NewReader(grammarSource))
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(g, StartProduction); err != nil {
		return nil, err
	}
	return g, nil
}
