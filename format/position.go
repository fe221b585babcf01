package format

import (
	"sort"
	"unicode/utf8"
)

type position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// lines converts byte offsets into 1-based lines and rune columns.
type lines struct {
	src    string
	starts []int
}

func newLines(src string) *lines {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lines{src: src, starts: starts}
}

func (l *lines) at(offset int) position {
	offset = max(0, min(offset, len(l.src)))
	line := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
	return position{
		Line:   line + 1,
		Column: utf8.RuneCountInString(l.src[l.starts[line]:offset]) + 1,
	}
}
