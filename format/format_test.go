package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/alkoleft/lezer-bsl/bsl/parser"
)

func parse(src string) *parser.Tree {
	return parser.New().Parse(src)
}

func TestTreeJSONEncoder(t *testing.T) {
	src := "a = 1;\nб = ;"
	var buf bytes.Buffer
	if err := NewTreeJSONEncoder(&buf, src).Encode(parse(src)); err != nil {
		t.Fatal(err)
	}

	var root treeNode
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if root.Name != "Module" || len(root.Children) != 2 {
		t.Fatalf("root = %s with %d children", root.Name, len(root.Children))
	}
	number := root.Children[0].Children[2]
	if number.Name != "Number" || number.Text != "1" {
		t.Errorf("number = %+v", number)
	}
	second := root.Children[1]
	if second.Span.Start != (position{Line: 2, Column: 1}) {
		t.Errorf("second statement starts at %+v", second.Span.Start)
	}
	missing := second.Children[2]
	if missing.Error == nil || missing.Error.Message != "expected expression" {
		t.Errorf("missing expression node = %+v", missing)
	}
	if missing.Span.Start != (position{Line: 2, Column: 4}) {
		t.Errorf("error at %+v, want 2:4", missing.Span.Start)
	}
}

func TestYAMLEncoder(t *testing.T) {
	src := "a = 1;"
	text, err := (&YAMLEncoder{src: src, tree: parse(src)}).MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var root treeNode
	if err := yaml.Unmarshal(text, &root); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, text)
	}
	if got := root.Children[0].Children[1].Text; got != "=" {
		t.Errorf("operator text = %q", got)
	}
	if !strings.HasPrefix(string(text), "name: Module\n") {
		t.Errorf("unexpected document start:\n%s", text)
	}
}

func TestLineEncoder(t *testing.T) {
	src := "a = 1;"
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf, src).Encode(parse(src)); err != nil {
		t.Fatal(err)
	}
	want := "1:1\tvariableName\t\"a\"\n" +
		"1:3\tdefinitionOperator\t\"=\"\n" +
		"1:5\tnumber\t\"1\"\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	if _, err := (&LineEncoder{src: "a", tree: parse("abc = 1;")}).MarshalText(); err == nil {
		t.Error("tokens past the source end should fail")
	}
}

func TestStyledEncoder(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		positions bool
		want      string
	}{
		{
			"outline",
			"a = 1;",
			false,
			"Module\n  Assignment\n    Identifier a\n    AssignOp =\n    Number 1\n",
		},
		{
			"positions",
			"return;",
			true,
			"Module [0..7]\n  ReturnStmt [0..7]\n    return [0..6]\n",
		},
		{
			"error",
			"a = ;",
			false,
			"Module\n  Assignment\n    Identifier a\n    AssignOp =\n    ⚠ expected expression\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewStyledEncoder(&buf, tt.src, NewStyles(false), tt.positions)
			if err := enc.Encode(parse(tt.src)); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestStyledEncoderClips(t *testing.T) {
	src := "s = \"" + strings.Repeat("x", 200) + "\";"
	enc := NewStyledEncoder(nil, src, NewStyles(false), false)
	enc.Width = 60
	enc.tree = parse(src)
	text, err := enc.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(strings.TrimSpace(string(text)), "\n") {
		if n := len([]rune(line)); n > 60 {
			t.Errorf("line of %d runes: %s", n, line)
		}
	}
}
