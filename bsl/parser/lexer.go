package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/alkoleft/lezer-bsl/bsl/literal"
)

type Lexer struct {
	input      string
	pos        int
	specialize SpecializeFunc
	// horizon is one past the furthest byte offset the lexer has examined.
	horizon int
}

// NewLexer creates a lexer over input. Identifiers are passed through
// specialize; a nil specialize leaves every identifier unspecialized.
func NewLexer(input string, specialize SpecializeFunc) *Lexer {
	return &Lexer{
		input:      input,
		specialize: specialize,
	}
}

func (l *Lexer) Pos() int {
	return l.pos
}

// Reset moves the lexer to pos without forgetting how far it has looked.
func (l *Lexer) Reset(pos int) {
	l.pos = pos
}

// Horizon returns one past the furthest byte offset examined so far.
func (l *Lexer) Horizon() int {
	return l.horizon
}

func (l *Lexer) extendHorizon(end int) {
	if end > l.horizon {
		l.horizon = end
	}
}

// Peek implements literal.Input.
func (l *Lexer) Peek(n int) int {
	i := l.pos + n
	l.extendHorizon(i + 1)
	if i < 0 || i >= len(l.input) {
		return -1
	}
	return int(l.input[i])
}

func (l *Lexer) byteAt(i int) byte {
	l.extendHorizon(i + 1)
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *Lexer) runeAt(i int) (rune, int) {
	if i >= len(l.input) {
		l.extendHorizon(i + 1)
		return utf8.RuneError, 0
	}
	r, size := utf8.DecodeRuneInString(l.input[i:])
	l.extendHorizon(i + size)
	return r, size
}

func (l *Lexer) NextToken() Token {
	start := l.pos
	if start >= len(l.input) {
		l.extendHorizon(start + 1)
		return Token{Kind: TokenEOF, From: start, To: start}
	}

	ch := l.byteAt(start)
	switch {
	case ch == '/' && l.byteAt(start+1) == '/':
		return l.scanToLineEnd(TokenComment)
	case ch == '#':
		return l.scanToLineEnd(TokenPreproc)
	case ch == '"' || ch == '|':
		return l.scanLiteral()
	case ch == '\'':
		return l.scanDate()
	case isDigit(ch):
		return l.scanNumber()
	}

	r, size := l.runeAt(start)
	if isSpace(r) {
		return l.scanWhitespace()
	}
	if isIdentStart(r) {
		return l.scanIdentOrKeyword()
	}
	if ch < utf8.RuneSelf {
		return l.scanOperator()
	}

	l.pos += size
	return l.token(TokenError, start)
}

func (l *Lexer) scanWhitespace() Token {
	start := l.pos
	for {
		r, size := l.runeAt(l.pos)
		if size == 0 || !isSpace(r) {
			break
		}
		l.pos += size
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanToLineEnd(kind TokenKind) Token {
	start := l.pos
	for l.pos < len(l.input) && l.byteAt(l.pos) != '\n' {
		l.pos++
	}
	l.byteAt(l.pos)
	return l.token(kind, start)
}

func (l *Lexer) scanLiteral() Token {
	start := l.pos
	lit, ok := literal.Scan(l)
	if !ok {
		l.pos++
		return l.token(TokenError, start)
	}
	l.pos += lit.Length

	kind := TokenString
	switch lit.Kind {
	case literal.MultilineStringStart:
		kind = TokenMultilineStringStart
	case literal.MultilineStringContinue:
		kind = TokenMultilineStringContinue
	}
	tok := l.token(kind, start)
	tok.Closed = lit.Closed
	return tok
}

func (l *Lexer) scanDate() Token {
	start := l.pos
	l.pos++
	closed := false
	for l.pos < len(l.input) {
		ch := l.byteAt(l.pos)
		if ch == '\n' {
			break
		}
		l.pos++
		if ch == '\'' {
			closed = true
			break
		}
	}
	if !closed {
		l.byteAt(l.pos)
	}
	tok := l.token(TokenDate, start)
	tok.Closed = closed
	return tok
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	for isDigit(l.byteAt(l.pos)) {
		l.pos++
	}
	if l.byteAt(l.pos) == '.' && isDigit(l.byteAt(l.pos+1)) {
		l.pos++
		for isDigit(l.byteAt(l.pos)) {
			l.pos++
		}
	}
	return l.token(TokenNumber, start)
}

func (l *Lexer) scanIdentOrKeyword() Token {
	start := l.pos
	for {
		r, size := l.runeAt(l.pos)
		if size == 0 || !isIdentPart(r) {
			break
		}
		l.pos += size
	}
	tok := l.token(TokenIdent, start)
	if l.specialize != nil {
		if kind := l.specialize(tok.Text); kind != NotKeyword {
			tok.Kind = kind
		}
	}
	return tok
}

func (l *Lexer) scanOperator() Token {
	start := l.pos
	ch := l.byteAt(start)
	l.pos++

	switch ch {
	case '(':
		return l.token(TokenLParen, start)
	case ')':
		return l.token(TokenRParen, start)
	case '[':
		return l.token(TokenLBracket, start)
	case ']':
		return l.token(TokenRBracket, start)
	case ';':
		return l.token(TokenSemicolon, start)
	case ',':
		return l.token(TokenComma, start)
	case '.':
		return l.token(TokenDot, start)
	case '?':
		return l.token(TokenQuestion, start)
	case ':':
		return l.token(TokenColon, start)
	case '&':
		return l.token(TokenAmp, start)
	case '~':
		return l.token(TokenTilde, start)
	case '=':
		return l.token(TokenAssign, start)
	case '+':
		return l.token(TokenPlus, start)
	case '-':
		return l.token(TokenMinus, start)
	case '*':
		return l.token(TokenStar, start)
	case '/':
		return l.token(TokenSlash, start)
	case '%':
		return l.token(TokenPercent, start)
	case '<':
		switch l.byteAt(l.pos) {
		case '>':
			l.pos++
			return l.token(TokenNE, start)
		case '=':
			l.pos++
			return l.token(TokenLE, start)
		}
		return l.token(TokenLT, start)
	case '>':
		if l.byteAt(l.pos) == '=' {
			l.pos++
			return l.token(TokenGE, start)
		}
		return l.token(TokenGT, start)
	}

	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	return Token{
		Kind: kind,
		From: start,
		To:   l.pos,
		Text: l.input[start:l.pos],
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\v', '\f', '\u00a0', '\ufeff':
		return true
	}
	return false
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
