package format

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/alkoleft/lezer-bsl/bsl/parser"
)

// YAMLEncoder writes the same document as TreeJSONEncoder in YAML.
type YAMLEncoder struct {
	w    io.Writer
	src  string
	tree *parser.Tree
}

func NewYAMLEncoder(w io.Writer, src string) *YAMLEncoder {
	return &YAMLEncoder{w: w, src: src}
}

func (e *YAMLEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(buildTree(e.tree, e.src)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
