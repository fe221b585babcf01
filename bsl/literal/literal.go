// Package literal recognizes BSL string literal tokens.
//
// A literal is either an ordinary quoted string, the first line of a
// multiline string, or a continuation line starting with '|'. Quotes inside a
// literal are escaped by doubling them, so the recognizer decides termination
// by the parity of each run of quote characters:
//
//	"a""b"          one String token
//	x = "line one   MultilineStringStart, ends before the line break
//	    |line two"  MultilineStringContinue, starts at '|'
//
// The recognizer only reads bytes through Input and keeps no state between
// calls.
package literal

import "strings"

const (
	quote        = '"'
	continuation = '|'
	newline      = '\n'
)

// Kind identifies the literal token produced by Scan.
type Kind int

const (
	String Kind = iota
	MultilineStringStart
	MultilineStringContinue
)

var kindNames = map[Kind]string{
	String:                  "String",
	MultilineStringStart:    "MultilineStringStart",
	MultilineStringContinue: "MultilineStringContinue",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Input gives the recognizer access to raw characters. Peek returns the byte
// n positions ahead of the current offset, or -1 past the end of input.
type Input interface {
	Peek(n int) int
}

// Token is a recognized literal. Length counts bytes from the current
// offset. Closed reports whether the token ended on a terminating quote run
// rather than at a line break or the end of input.
type Token struct {
	Kind   Kind
	Length int
	Closed bool
}

// Scan recognizes a literal at the current offset of in. It returns false
// when the offset holds neither a quote nor a continuation marker.
func Scan(in Input) (Token, bool) {
	switch in.Peek(0) {
	case continuation:
		return scanContinuation(in), true
	case quote:
		return scanString(in), true
	}
	return Token{}, false
}

func scanContinuation(in Input) Token {
	pos := 1
	for {
		ch := in.Peek(pos)
		if ch < 0 || ch == newline {
			return Token{Kind: MultilineStringContinue, Length: pos}
		}
		if ch == quote {
			run := quoteRun(in, pos)
			if run%2 == 0 {
				pos += run
				continue
			}
			return Token{Kind: MultilineStringContinue, Length: pos + run, Closed: true}
		}
		pos++
	}
}

func scanString(in Input) Token {
	pos := 1
	crossed := false
	kind := func() Kind {
		if crossed {
			return MultilineStringStart
		}
		return String
	}

	for {
		ch := in.Peek(pos)
		if ch < 0 {
			return Token{Kind: kind(), Length: pos}
		}
		if ch == newline {
			crossed = true
			ahead := pos + 1
			for c := in.Peek(ahead); c == ' ' || c == '\t'; c = in.Peek(ahead) {
				ahead++
			}
			if in.Peek(ahead) == continuation {
				return Token{Kind: MultilineStringStart, Length: pos}
			}
			return Token{Kind: kind(), Length: pos}
		}
		if ch == quote {
			run := quoteRun(in, pos)
			if run%2 == 0 {
				pos += run
				continue
			}
			return Token{Kind: kind(), Length: pos + run, Closed: true}
		}
		pos++
	}
}

// quoteRun counts consecutive quotes starting at pos.
func quoteRun(in Input, pos int) int {
	n := 1
	for in.Peek(pos+n) == quote {
		n++
	}
	return n
}

// Unquote returns the content of literal token text: the leading quote or
// continuation marker is dropped, the terminating quote of a closed token is
// dropped and doubled quotes collapse to one.
func Unquote(text string, closed bool) string {
	if text == "" {
		return ""
	}
	if text[0] == quote || text[0] == continuation {
		text = text[1:]
	}
	if closed && len(text) > 0 {
		text = text[:len(text)-1]
	}
	return strings.ReplaceAll(text, `""`, `"`)
}

type textInput struct {
	text string
	at   int
}

func (in textInput) Peek(n int) int {
	i := in.at + n
	if i < 0 || i >= len(in.text) {
		return -1
	}
	return int(in.text[i])
}

// ScanText runs Scan over text at byte offset at.
func ScanText(text string, at int) (Token, bool) {
	return Scan(textInput{text: text, at: at})
}
