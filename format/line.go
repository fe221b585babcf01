package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alkoleft/lezer-bsl/bsl/highlight"
	"github.com/alkoleft/lezer-bsl/bsl/parser"
)

// LineEncoder writes one tab separated line per highlighted token:
// position, tag and quoted text.
type LineEncoder struct {
	w    io.Writer
	src  string
	tree *parser.Tree
}

func NewLineEncoder(w io.Writer, src string) *LineEncoder {
	return &LineEncoder{w: w, src: src}
}

func (e *LineEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	l := newLines(e.src)
	for _, span := range highlight.Tokens(e.tree) {
		if span.To > len(e.src) {
			return nil, fmt.Errorf("token %d..%d is outside the source", span.From, span.To)
		}
		p := l.at(span.From)
		fmt.Fprintf(&sb, "%d:%d\t%s\t%s\n", p.Line, p.Column, span.Tag, strconv.Quote(e.src[span.From:span.To]))
	}
	return []byte(sb.String()), nil
}
