package literal

import "testing"

func TestScan(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		at     int
		kind   Kind
		length int
		closed bool
	}{
		{"simple", `"hello"`, 0, String, 7, true},
		{"empty", `""`, 0, String, 2, true},
		{"doubled quote", `"a""b"`, 0, String, 6, true},
		{"only escaped quote", `""""`, 0, String, 4, true},
		{"unterminated at eof", `"a""b`, 0, String, 5, false},
		{"lone quote", `"`, 0, String, 1, false},
		{"stops after terminator", `"ab" + "cd"`, 0, String, 4, true},
		{"multiline start", "x = \"line one\n    |line two\";", 4, MultilineStringStart, 9, false},
		{"continuation", "x = \"line one\n    |line two\";", 18, MultilineStringContinue, 10, true},
		{"tab indented continuation", "\"abc\n\t\t|def\"", 0, MultilineStringStart, 4, false},
		{"line break without continuation", "\"abc\nnext", 0, MultilineStringStart, 4, false},
		{"continuation with doubled quote", `|a""b"c`, 0, MultilineStringContinue, 6, true},
		{"continuation to line break", "|abc\n|def", 0, MultilineStringContinue, 4, false},
		{"continuation to eof", "|abc", 0, MultilineStringContinue, 4, false},
		{"odd run of three closes", `"a"""`, 0, String, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok := ScanText(tt.input, tt.at)
			if !ok {
				t.Fatalf("ScanText(%q, %d) declined", tt.input, tt.at)
			}
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Length != tt.length {
				t.Errorf("Length = %d, want %d", tok.Length, tt.length)
			}
			if tok.Closed != tt.closed {
				t.Errorf("Closed = %v, want %v", tok.Closed, tt.closed)
			}
		})
	}
}

func TestScanDeclines(t *testing.T) {
	for _, input := range []string{"abc", "", " \"x\"", "'20240101'", "123"} {
		if tok, ok := ScanText(input, 0); ok {
			t.Errorf("ScanText(%q) = %+v, want decline", input, tok)
		}
	}
}

func TestMultilineBoundary(t *testing.T) {
	src := "x = \"line one\n    |line two\";"

	start, ok := ScanText(src, 4)
	if !ok {
		t.Fatal("no token at opening quote")
	}
	if end := 4 + start.Length; src[end] != '\n' {
		t.Errorf("multiline start ends at %d (%q), want right before the line break", end, src[end])
	}

	bar := 18
	if src[bar] != '|' {
		t.Fatalf("test source has no marker at %d", bar)
	}
	cont, ok := ScanText(src, bar)
	if !ok {
		t.Fatal("no token at continuation marker")
	}
	if got := src[bar : bar+cont.Length]; got != `|line two"` {
		t.Errorf("continuation text = %q", got)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		text   string
		closed bool
		want   string
	}{
		{`"hello"`, true, "hello"},
		{`"a""b"`, true, `a"b`},
		{`""`, true, ""},
		{`""""`, true, `"`},
		{`"open`, false, "open"},
		{`|tail"`, true, "tail"},
		{`|middle`, false, "middle"},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Unquote(tt.text, tt.closed); got != tt.want {
				t.Errorf("Unquote(%q, %v) = %q, want %q", tt.text, tt.closed, got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := MultilineStringContinue.String(); got != "MultilineStringContinue" {
		t.Errorf("String() = %q", got)
	}
	if got := Kind(42).String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
}
