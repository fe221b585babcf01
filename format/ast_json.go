package format

import (
	"encoding/json"
	"io"

	"github.com/alkoleft/lezer-bsl/bsl/parser"
)

// TreeJSONEncoder writes a tree as indented JSON with line and column
// spans. Leaves carry their source text.
type TreeJSONEncoder struct {
	w    io.Writer
	src  string
	tree *parser.Tree
}

func NewTreeJSONEncoder(w io.Writer, src string) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w, src: src}
}

func (e *TreeJSONEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *TreeJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildTree(e.tree, e.src), "", "  ")
}

type treeNode struct {
	Name     string      `json:"name" yaml:"name"`
	Span     *treeSpan   `json:"span,omitempty" yaml:"span,omitempty"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty"`
	Error    *treeError  `json:"error,omitempty" yaml:"error,omitempty"`
	Children []*treeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type treeSpan struct {
	Start position `json:"start" yaml:"start"`
	End   position `json:"end" yaml:"end"`
}

type treeError struct {
	Message  string   `json:"message" yaml:"message"`
	Expected []string `json:"expected,omitempty" yaml:"expected,omitempty"`
}

func buildTree(tree *parser.Tree, src string) *treeNode {
	if tree == nil || tree.Root == nil {
		return nil
	}
	return nodeToTree(tree.Root, src, newLines(src))
}

func nodeToTree(n *parser.Node, src string, l *lines) *treeNode {
	tn := &treeNode{
		Name: n.Name(),
		Span: &treeSpan{Start: l.at(n.From), End: l.at(n.To)},
	}

	if len(n.Children) == 0 && n.To <= len(src) && n.Kind != parser.KindError {
		tn.Text = n.Text(src)
	}

	if n.Error != nil {
		tn.Error = &treeError{Message: n.Error.Message}
		for _, exp := range n.Error.Expected {
			tn.Error.Expected = append(tn.Error.Expected, exp.String())
		}
	}

	if len(n.Children) > 0 {
		tn.Children = make([]*treeNode, len(n.Children))
		for i, child := range n.Children {
			tn.Children[i] = nodeToTree(child, src, l)
		}
	}

	return tn
}
