package workspace

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// lineIndex maps between byte offsets and LSP positions, whose characters
// count UTF-16 code units.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{text: text, starts: starts}
}

// offset returns the byte offset of pos. Positions past the end of a line
// clamp to the line end, positions past the last line to the text end.
func (li *lineIndex) offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(li.starts) {
		return len(li.text)
	}
	end := li.lineEnd(line)
	off := li.starts[line]
	units := 0
	for off < end && units < int(pos.Character) {
		r, size := utf8.DecodeRuneInString(li.text[off:end])
		units += utf16Len(r)
		off += size
	}
	return off
}

func (li *lineIndex) position(offset int) protocol.Position {
	offset = max(0, min(offset, len(li.text)))
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	units := 0
	for _, r := range li.text[li.starts[line]:offset] {
		units += utf16Len(r)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(units)}
}

func (li *lineIndex) rangeOf(from, to int) protocol.Range {
	return protocol.Range{Start: li.position(from), End: li.position(to)}
}

// lineEnd returns the offset of the line break ending line, or the text end.
func (li *lineIndex) lineEnd(line int) int {
	if line+1 < len(li.starts) {
		return li.starts[line+1] - 1
	}
	return len(li.text)
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}
