package overlay

// History is a linear undo/redo log of committed shape lists. The first
// snapshot is always the empty list and the visible list is the snapshot
// at the cursor. Snapshots are never modified after they are pushed.
type History struct {
	snapshots [][]Shape
	cursor    int
}

// NewHistory returns a history holding only the empty snapshot.
func NewHistory() *History {
	return &History{snapshots: [][]Shape{{}}}
}

// Shapes returns the visible shape list. Callers must not modify it.
func (h *History) Shapes() []Shape { return h.snapshots[h.cursor] }

// Cursor returns the index of the visible snapshot.
func (h *History) Cursor() int { return h.cursor }

// Len returns the number of reachable snapshots.
func (h *History) Len() int { return len(h.snapshots) }

// Snapshot returns the snapshot at i.
func (h *History) Snapshot(i int) []Shape { return h.snapshots[i] }

// Commit appends s to the visible list as a new snapshot and drops any
// snapshots that could have been redone.
func (h *History) Commit(s Shape) {
	cur := h.snapshots[h.cursor]
	next := make([]Shape, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, s.clone())
	h.snapshots = append(h.snapshots[:h.cursor+1:h.cursor+1], next)
	h.cursor = len(h.snapshots) - 1
}

// Undo steps back one snapshot, reporting whether it moved.
func (h *History) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}

// Redo steps forward one snapshot, reporting whether it moved.
func (h *History) Redo() bool {
	if h.cursor >= len(h.snapshots)-1 {
		return false
	}
	h.cursor++
	return true
}

// CanUndo reports whether Undo would move.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would move.
func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// CountSequences returns the number of sequence markers currently visible.
func (h *History) CountSequences() int { return CountSequences(h.Shapes()) }
