package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alkoleft/lezer-bsl/bsl/parser"
)

type Styles struct {
	Node    lipgloss.Style
	Keyword lipgloss.Style
	Leaf    lipgloss.Style
	Text    lipgloss.Style
	Range   lipgloss.Style
	Error   lipgloss.Style
}

func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{Node: plain, Keyword: plain, Leaf: plain, Text: plain, Range: plain, Error: plain}
	}
	return &Styles{
		Node:    lipgloss.NewStyle().Bold(true),
		Keyword: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Leaf:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Range:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// StyledEncoder writes an indented outline of a tree for terminals. Leaves
// are followed by their source text, truncated to Width columns when Width
// is positive.
type StyledEncoder struct {
	w         io.Writer
	src       string
	tree      *parser.Tree
	styles    *Styles
	positions bool

	Width int
}

func NewStyledEncoder(w io.Writer, src string, styles *Styles, positions bool) *StyledEncoder {
	return &StyledEncoder{w: w, src: src, styles: styles, positions: positions}
}

func (e *StyledEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *StyledEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.tree != nil {
		e.tree.Walk(func(n *parser.Node, depth int) bool {
			e.writeNode(&sb, n, depth)
			return true
		})
	}
	return []byte(sb.String()), nil
}

func (e *StyledEncoder) writeNode(sb *strings.Builder, n *parser.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)

	switch {
	case n.IsError():
		sb.WriteString(e.styles.Error.Render(n.Name()))
	case n.Kind == parser.KindKeyword:
		sb.WriteString(e.styles.Keyword.Render(n.Name()))
	case len(n.Children) == 0:
		sb.WriteString(e.styles.Leaf.Render(n.Name()))
	default:
		sb.WriteString(e.styles.Node.Render(n.Name()))
	}

	if e.positions {
		sb.WriteString(" ")
		sb.WriteString(e.styles.Range.Render("[" + strconv.Itoa(n.From) + ".." + strconv.Itoa(n.To) + "]"))
	}

	if n.Error != nil {
		sb.WriteString(" ")
		sb.WriteString(e.styles.Error.Render(n.Error.Message))
	} else if len(n.Children) == 0 && n.Kind != parser.KindKeyword && n.To <= len(e.src) {
		sb.WriteString(" ")
		sb.WriteString(e.styles.Text.Render(e.clip(n.Text(e.src), len(indent))))
	}
	sb.WriteString("\n")
}

// clip flattens text onto one line and shortens it to the remaining width.
func (e *StyledEncoder) clip(text string, used int) string {
	text = strings.Join(strings.Fields(text), " ")
	if e.Width <= 0 {
		return text
	}
	room := e.Width - used - 20
	runes := []rune(text)
	if room < 4 || len(runes) <= room {
		return text
	}
	return string(runes[:room-1]) + "…"
}
