// Package keyword makes BSL keyword recognition independent of letter case
// and vocabulary.
//
// BSL has a Russian and an English spelling for every keyword, and both may
// be written in any case: Процедура, ПРОЦЕДУРА and procedure all start a
// procedure. The grammar itself only specializes identifiers on one
// canonical spelling per keyword. CaseInsensitive wraps that specializer so
// every spelling in the table resolves to its canonical form first.
package keyword

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/alkoleft/lezer-bsl/bsl/parser"
)

//go:embed keywords.yaml
var tableSource []byte

// Table maps lowercase keyword spellings to canonical spellings.
type Table struct {
	canonicals []string
	byLower    map[string]string
	spellings  map[string][]string
}

// ParseTable reads a table from YAML: a mapping from canonical spelling to a
// list of spellings.
func ParseTable(data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse keyword table: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse keyword table: expected a mapping")
	}

	t := &Table{
		byLower:   make(map[string]string),
		spellings: make(map[string][]string),
	}
	m := doc.Content[0]
	for i := 0; i+1 < len(m.Content); i += 2 {
		canonical := m.Content[i].Value
		var spellings []string
		if err := m.Content[i+1].Decode(&spellings); err != nil {
			return nil, fmt.Errorf("parse keyword table: %s (line %d): %w", canonical, m.Content[i].Line, err)
		}
		if _, dup := t.spellings[canonical]; dup {
			return nil, fmt.Errorf("parse keyword table: duplicate keyword %q", canonical)
		}
		t.canonicals = append(t.canonicals, canonical)
		for _, sp := range spellings {
			lower := fold(sp)
			if prev, ok := t.byLower[lower]; ok && prev != canonical {
				return nil, fmt.Errorf("parse keyword table: %q spells both %s and %s", sp, prev, canonical)
			}
			t.byLower[lower] = canonical
			t.spellings[canonical] = append(t.spellings[canonical], lower)
		}
	}
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the built-in table of 40 keywords.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := ParseTable(tableSource)
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}

// Lookup returns the canonical spelling for text in any case.
func (t *Table) Lookup(text string) (string, bool) {
	canonical, ok := t.byLower[fold(text)]
	return canonical, ok
}

// Spellings returns the lowercase spellings of a canonical keyword.
func (t *Table) Spellings(canonical string) []string {
	return append([]string(nil), t.spellings[canonical]...)
}

// Canonicals returns the canonical spellings in table order.
func (t *Table) Canonicals() []string {
	return append([]string(nil), t.canonicals...)
}

func (t *Table) Len() int {
	return len(t.canonicals)
}

// Specializer wraps original, the grammar's own specializer, so that it
// sees canonical spellings. Text that is not a keyword in any spelling maps
// to parser.NotKeyword.
func (t *Table) Specializer(original parser.SpecializeFunc) parser.SpecializeFunc {
	return func(text string) parser.TokenKind {
		canonical, ok := t.Lookup(text)
		if !ok {
			return parser.NotKeyword
		}
		return original(canonical)
	}
}

func Lookup(text string) (string, bool) {
	return Default().Lookup(text)
}

func Spellings(canonical string) []string {
	return Default().Spellings(canonical)
}

func Canonicals() []string {
	return Default().Canonicals()
}

// CaseInsensitive wraps original with the default table.
func CaseInsensitive(original parser.SpecializeFunc) parser.SpecializeFunc {
	return Default().Specializer(original)
}

// Install replaces the identifier specializer of p with a case-insensitive
// one. It only does so when the grammar declares exactly one specializer;
// otherwise p is returned unchanged with false.
func Install(p *parser.Parser) (*parser.Parser, bool) {
	specs := p.Specializers()
	if len(specs) != 1 {
		return p, false
	}
	for term, original := range specs {
		return p.Configure(parser.WithSpecializer(term, CaseInsensitive(original))), true
	}
	return p, false
}

// fold lowercases rune by rune.
func fold(s string) string {
	return strings.ToLower(s)
}
