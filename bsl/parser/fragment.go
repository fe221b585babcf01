package parser

// DefaultMinGap is the smallest unchanged stretch, in bytes, that is kept as a
// reusable fragment between two edits.
const DefaultMinGap = 128

// ChangedRange describes one edit: [FromOld, ToOld) in the previous document
// was replaced by [FromNew, ToNew) in the new one. A list of ranges must be
// sorted and non-overlapping.
type ChangedRange struct {
	FromOld int
	ToOld   int
	FromNew int
	ToNew   int
}

// TreeFragment marks a stretch of the new document, [From, To), whose
// structure can be taken from an older tree. Offset converts document
// positions to positions in that tree: treePos = docPos + Offset.
//
// OpenStart and OpenEnd report whether an edit borders the fragment on that
// side. A node whose lookahead runs past an open end is not reusable. The
// start side needs no such check: a node is only taken when it begins at a
// token the new parse has just lexed inside [From, To), so text before an
// open start never decides where it begins.
type TreeFragment struct {
	From      int
	To        int
	Offset    int
	OpenStart bool
	OpenEnd   bool
	tree      *Tree
}

func (f TreeFragment) Tree() *Tree {
	return f.tree
}

// AddTree returns fragments that cover the whole of tree, followed by any of
// the given fragments that reach past its end.
func AddTree(tree *Tree, fragments []TreeFragment) []TreeFragment {
	result := []TreeFragment{{From: 0, To: tree.Length(), tree: tree}}
	for _, f := range fragments {
		if f.To > tree.Length() {
			result = append(result, f)
		}
	}
	return result
}

// ApplyChanges moves fragments over a set of changes. Parts of fragments
// touched by a change are cut away, and stretches between changes shorter
// than minGap are dropped entirely.
func ApplyChanges(fragments []TreeFragment, changes []ChangedRange, minGap int) []TreeFragment {
	if len(changes) == 0 {
		return fragments
	}

	var result []TreeFragment
	fi := 0
	next := func() *TreeFragment {
		if fi < len(fragments) {
			f := &fragments[fi]
			fi++
			return f
		}
		return nil
	}
	nextF := next()

	pos, off := 0, 0
	for ci := 0; ; ci++ {
		var nextC *ChangedRange
		nextPos := int(^uint(0) >> 1)
		if ci < len(changes) {
			nextC = &changes[ci]
			nextPos = nextC.FromOld
		}

		if nextPos-pos >= minGap {
			for nextF != nil && nextF.From < nextPos {
				cut := *nextF
				keep := true
				if pos >= cut.From || nextPos <= cut.To || off != 0 {
					from := max(cut.From, pos) - off
					to := min(cut.To, nextPos) - off
					if from >= to {
						keep = false
					} else {
						cut = TreeFragment{
							From:      from,
							To:        to,
							Offset:    nextF.Offset + off,
							OpenStart: nextF.OpenStart || (ci > 0 && pos >= nextF.From),
							OpenEnd:   nextF.OpenEnd || (nextC != nil && nextPos <= nextF.To),
							tree:      nextF.tree,
						}
					}
				}
				if keep {
					result = append(result, cut)
				}
				if nextF.To > nextPos {
					break
				}
				nextF = next()
			}
		}

		if nextC == nil {
			break
		}
		pos = nextC.ToOld
		off = nextC.ToOld - nextC.ToNew
	}
	return result
}
