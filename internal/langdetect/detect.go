// Package langdetect decides whether a file holds BSL source.
package langdetect

import (
	"unicode"

	"github.com/go-enry/go-enry/v2"

	"github.com/alkoleft/lezer-bsl/bsl/keyword"
)

// BSL is the linguist name of the language.
const BSL = "1C Enterprise"

// blockEnds are the keywords that only close BSL blocks.
var blockEnds = map[string]bool{
	"endProcedure": true,
	"endFunction":  true,
	"endIf":        true,
	"endDo":        true,
	"endTry":       true,
}

// Detect returns the language of a file. The extension wins when it is
// unambiguous, then a shebang, then the content: BSL block keywords, or
// the linguist classifier as a last resort. It returns "" when nothing
// matched.
func Detect(path string, content []byte) string {
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return lang
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}
	if looksLikeBSL(content) {
		return BSL
	}
	return enry.GetLanguage(path, content)
}

func IsBSL(path string, content []byte) bool {
	return Detect(path, content) == BSL
}

func looksLikeBSL(content []byte) bool {
	word := make([]rune, 0, 32)
	check := func() bool {
		if len(word) == 0 {
			return false
		}
		canonical, ok := keyword.Lookup(string(word))
		word = word[:0]
		return ok && blockEnds[canonical]
	}
	for _, r := range string(content) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			word = append(word, r)
			continue
		}
		if check() {
			return true
		}
	}
	return check()
}
