package session

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alkoleft/lezer-bsl/bsl/parser"
)

var (
	ErrOverlappingEdits = errors.New("overlapping edits")
	ErrEditOutOfRange   = errors.New("edit out of range")
)

// Edit replaces RemovedLength bytes at Offset with InsertedText. Offsets and
// lengths are byte counts against the text before the batch was applied.
type Edit struct {
	Offset        int
	RemovedLength int
	InsertedText  string
}

func (e Edit) String() string {
	return fmt.Sprintf("%d-%d:%q", e.Offset, e.Offset+e.RemovedLength, e.InsertedText)
}

// sortEdits orders edits by offset. At equal offsets pure insertions come
// before removals, so an insertion and a removal at one offset touch rather
// than overlap whatever order they were given in.
func sortEdits(edits []Edit) []Edit {
	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Offset != sorted[j].Offset {
			return sorted[i].Offset < sorted[j].Offset
		}
		return sorted[i].RemovedLength < sorted[j].RemovedLength
	})
	return sorted
}

// ChangedRanges converts a batch of edits into changed ranges, sorted by
// old position. Each new range is shifted by the size change of the edits
// before it.
func ChangedRanges(edits []Edit) []parser.ChangedRange {
	ranges := make([]parser.ChangedRange, 0, len(edits))
	delta := 0
	for _, e := range sortEdits(edits) {
		ranges = append(ranges, parser.ChangedRange{
			FromOld: e.Offset,
			ToOld:   e.Offset + e.RemovedLength,
			FromNew: e.Offset + delta,
			ToNew:   e.Offset + delta + len(e.InsertedText),
		})
		delta += len(e.InsertedText) - e.RemovedLength
	}
	return ranges
}

// ValidateEdits checks that a batch fits an old document of oldLen bytes and
// produces one of newLen bytes. Edits may touch but not overlap.
func ValidateEdits(edits []Edit, oldLen, newLen int) error {
	end := 0
	delta := 0
	for i, e := range sortEdits(edits) {
		if e.Offset < 0 || e.RemovedLength < 0 {
			return fmt.Errorf("%w: %v has a negative offset or length", ErrEditOutOfRange, e)
		}
		if e.Offset+e.RemovedLength > oldLen {
			return fmt.Errorf("%w: %v ends past the document end %d", ErrEditOutOfRange, e, oldLen)
		}
		if i > 0 && e.Offset < end {
			return fmt.Errorf("%w: %v starts before the previous edit ends at %d", ErrOverlappingEdits, e, end)
		}
		end = e.Offset + e.RemovedLength
		delta += len(e.InsertedText) - e.RemovedLength
	}
	if oldLen+delta != newLen {
		return fmt.Errorf("%w: edits turn %d bytes into %d, text has %d", ErrEditOutOfRange, oldLen, oldLen+delta, newLen)
	}
	return nil
}

// Apply applies a valid batch of edits to text.
func Apply(text string, edits []Edit) (string, error) {
	if err := ValidateEdits(edits, len(text), len(text)+sizeChange(edits)); err != nil {
		return "", err
	}
	var out []byte
	pos := 0
	for _, e := range sortEdits(edits) {
		out = append(out, text[pos:e.Offset]...)
		out = append(out, e.InsertedText...)
		pos = e.Offset + e.RemovedLength
	}
	out = append(out, text[pos:]...)
	return string(out), nil
}

func sizeChange(edits []Edit) int {
	delta := 0
	for _, e := range edits {
		delta += len(e.InsertedText) - e.RemovedLength
	}
	return delta
}
