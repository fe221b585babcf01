package parser

import "testing"

func lexAll(input string) []Token {
	l := NewLexer(input, LookupKeyword)
	var toks []Token
	for {
		tok := l.NextToken()
		if tok.Kind == TokenWhitespace {
			continue
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks
		}
	}
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []TokenKind
	}{
		{"assignment", "a = 1;", []TokenKind{TokenIdent, TokenAssign, TokenNumber, TokenSemicolon}},
		{"keywords", "procedure P() export", []TokenKind{TokenProcedure, TokenIdent, TokenLParen, TokenRParen, TokenExport}},
		{"keywords are exact", "Procedure", []TokenKind{TokenIdent}},
		{"cyrillic identifier", "Сумма_1", []TokenKind{TokenIdent}},
		{"comparison", "<> <= >= < > =", []TokenKind{TokenNE, TokenLE, TokenGE, TokenLT, TokenGT, TokenAssign}},
		{"arithmetic", "+-*/%", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent}},
		{"punctuation", "()[];,.?:&~", []TokenKind{TokenLParen, TokenRParen, TokenLBracket, TokenRBracket, TokenSemicolon, TokenComma, TokenDot, TokenQuestion, TokenColon, TokenAmp, TokenTilde}},
		{"comment", "a // note\nb", []TokenKind{TokenIdent, TokenComment, TokenIdent}},
		{"preprocessor", "#Region R\na", []TokenKind{TokenPreproc, TokenIdent}},
		{"string", `"a""b"`, []TokenKind{TokenString}},
		{"multiline string", "\"a\n|b\"", []TokenKind{TokenMultilineStringStart, TokenMultilineStringContinue}},
		{"date", "'20240101'", []TokenKind{TokenDate}},
		{"fraction", "3.14", []TokenKind{TokenNumber}},
		{"member after number", "1.a", []TokenKind{TokenNumber, TokenDot, TokenIdent}},
		{"unknown character", "a @ b", []TokenKind{TokenIdent, TokenError, TokenIdent}},
		{"non-breaking space", "a\u00a0b", []TokenKind{TokenIdent, TokenIdent}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexAll(tt.input)
			want := append(append([]TokenKind(nil), tt.kinds...), TokenEOF)
			if len(toks) != len(want) {
				t.Fatalf("got %d tokens %v, want %d", len(toks), toks, len(want))
			}
			for i, tok := range toks {
				if tok.Kind != want[i] {
					t.Errorf("token %d = %v %q, want %v", i, tok.Kind, tok.Text, want[i])
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	toks := lexAll("a = \"x\";")
	want := []struct{ from, to int }{{0, 1}, {2, 3}, {4, 7}, {7, 8}, {8, 8}}
	for i, w := range want {
		if toks[i].From != w.from || toks[i].To != w.to {
			t.Errorf("token %d span = %d..%d, want %d..%d", i, toks[i].From, toks[i].To, w.from, w.to)
		}
	}
}

func TestLexerClosed(t *testing.T) {
	tests := []struct {
		input  string
		closed bool
	}{
		{`"done"`, true},
		{`"open`, false},
		{"'2024'", true},
		{"'2024", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := lexAll(tt.input)[0]
			if tok.Closed != tt.closed {
				t.Errorf("Closed = %v, want %v", tok.Closed, tt.closed)
			}
		})
	}
}

func TestLexerSpecializer(t *testing.T) {
	upper := func(text string) TokenKind {
		if text == "IF" {
			return TokenIf
		}
		return NotKeyword
	}
	l := NewLexer("IF if", upper)
	if tok := l.NextToken(); tok.Kind != TokenIf {
		t.Errorf("first token = %v, want if", tok.Kind)
	}
	l.NextToken()
	if tok := l.NextToken(); tok.Kind != TokenIdent {
		t.Errorf("second token = %v, want Identifier", tok.Kind)
	}

	l = NewLexer("if", nil)
	if tok := l.NextToken(); tok.Kind != TokenIdent {
		t.Errorf("without specializer token = %v, want Identifier", tok.Kind)
	}
}

func TestLexerHorizon(t *testing.T) {
	l := NewLexer("ab cd", nil)
	l.NextToken()
	if got := l.Horizon(); got != 3 {
		t.Errorf("Horizon() after first identifier = %d, want 3", got)
	}
	l.Reset(0)
	l.NextToken()
	if got := l.Horizon(); got != 3 {
		t.Errorf("Horizon() after Reset = %d, want it kept at 3", got)
	}

	l = NewLexer("x", nil)
	l.NextToken()
	l.NextToken()
	if got := l.Horizon(); got != 2 {
		t.Errorf("Horizon() at end of input = %d, want 2", got)
	}
}

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenProcedure, "procedure"},
		{TokenEndProcedure, "endProcedure"},
		{TokenNE, "<>"},
		{TokenIdent, "Identifier"},
		{NotKeyword, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
	if !TokenNull.IsKeyword() || TokenIdent.IsKeyword() {
		t.Error("IsKeyword() misclassifies")
	}
	if LookupKeyword("elseIf") != TokenElseIf || LookupKeyword("elseif") != NotKeyword {
		t.Error("LookupKeyword() should match canonical spellings exactly")
	}
}
