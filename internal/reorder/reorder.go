// Package reorder implements the drag-to-swap gesture for list rows as a
// state machine with no UI dependencies.
package reorder

import "errors"

var (
	ErrAlreadyDragging = errors.New("reorder: drag already in progress")
	ErrNotDragging     = errors.New("reorder: no drag in progress")
)

// State is the gesture state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Mark is the visual status of a row during a gesture.
type Mark uint8

const (
	MarkNone         Mark = 0
	MarkMoving       Mark = 1 << 0
	MarkDropEligible Mark = 1 << 1
)

// Has reports whether m includes flag.
func (m Mark) Has(flag Mark) bool { return m&flag != 0 }

// Reorderer tracks one drag gesture at a time. Every gesture ends in a
// commit or a cancel, after which the state is Idle with no marks.
type Reorderer[K comparable] struct {
	state   State
	source  K
	payload string
	marks   map[K]Mark
}

// New returns an idle Reorderer.
func New[K comparable]() *Reorderer[K] {
	return &Reorderer[K]{marks: make(map[K]Mark)}
}

// BeginDrag starts a gesture on source and captures its content.
func (r *Reorderer[K]) BeginDrag(source K, payload string) error {
	if r.state == Dragging {
		return ErrAlreadyDragging
	}
	r.state = Dragging
	r.source = source
	r.payload = payload
	r.marks = map[K]Mark{source: MarkMoving}
	return nil
}

// Enter marks target as a drop candidate. The source row is never eligible.
func (r *Reorderer[K]) Enter(target K) bool {
	if !r.AcceptDrop(target) {
		return false
	}
	r.marks[target] |= MarkDropEligible
	return true
}

// Leave clears the drop candidate mark on target.
func (r *Reorderer[K]) Leave(target K) {
	if r.state != Dragging {
		return
	}
	if m := r.marks[target] &^ MarkDropEligible; m == MarkNone {
		delete(r.marks, target)
	} else {
		r.marks[target] = m
	}
}

// Over reports whether a drop may happen over target. Hovering the source
// is allowed; dropping there cancels.
func (r *Reorderer[K]) Over(target K) bool {
	return r.state == Dragging
}

// AcceptDrop reports whether dropping on target would commit.
func (r *Reorderer[K]) AcceptDrop(target K) bool {
	return r.state == Dragging && target != r.source
}

// Commit finishes the gesture with a drop on target. ok is false when the
// drop cancels, either because nothing is being dragged or target is the
// source row.
func (r *Reorderer[K]) Commit(target K) (source, tgt K, ok bool) {
	if r.state != Dragging {
		return source, tgt, false
	}
	source = r.source
	ok = target != source
	r.reset()
	if !ok {
		var zero K
		return source, zero, false
	}
	return source, target, true
}

// End finishes the gesture without a drop. It returns ErrNotDragging when
// there is no gesture to cancel.
func (r *Reorderer[K]) End() error {
	if r.state != Dragging {
		return ErrNotDragging
	}
	r.reset()
	return nil
}

// State returns the current gesture state.
func (r *Reorderer[K]) State() State { return r.state }

// Source returns the row being dragged.
func (r *Reorderer[K]) Source() (K, bool) {
	if r.state != Dragging {
		var zero K
		return zero, false
	}
	return r.source, true
}

// Payload returns the content captured at BeginDrag.
func (r *Reorderer[K]) Payload() string { return r.payload }

// Marks returns the visual marks for row.
func (r *Reorderer[K]) Marks(row K) Mark { return r.marks[row] }

func (r *Reorderer[K]) reset() {
	var zero K
	r.state = Idle
	r.source = zero
	r.payload = ""
	clear(r.marks)
}
