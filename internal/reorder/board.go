package reorder

// Board holds the content of each row. A commit exchanges whole contents
// between two rows; rows themselves never move.
type Board[K comparable] struct {
	content map[K]string
}

// NewBoard returns an empty Board.
func NewBoard[K comparable]() *Board[K] {
	return &Board[K]{content: make(map[K]string)}
}

// Set replaces the content of row.
func (b *Board[K]) Set(row K, content string) { b.content[row] = content }

// Content returns the content of row.
func (b *Board[K]) Content(row K) string { return b.content[row] }

// Reset drops all rows.
func (b *Board[K]) Reset() { clear(b.content) }

// Swap exchanges the contents of a and c. Swapping the same pair twice
// restores the original arrangement.
func (b *Board[K]) Swap(a, c K) {
	b.content[a], b.content[c] = b.content[c], b.content[a]
}

// Begin starts a drag on row using its current content as the payload.
func (b *Board[K]) Begin(r *Reorderer[K], row K) error {
	return r.BeginDrag(row, b.content[row])
}

// Drop completes the gesture in r with a drop on target. On commit the
// target receives the payload captured when the drag began and the source
// receives the target's previous content.
func (b *Board[K]) Drop(r *Reorderer[K], target K) (source, tgt K, ok bool) {
	payload := r.Payload()
	source, tgt, ok = r.Commit(target)
	if !ok {
		return source, tgt, false
	}
	previous := b.content[tgt]
	b.content[tgt] = payload
	b.content[source] = previous
	return source, tgt, true
}
