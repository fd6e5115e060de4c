package cursor

import (
	"github.com/dshills/richdoc/internal/engine/document"
)

// Cursor is an addressable position between two characters of a document.
// The zero Cursor is invalid; obtain one with At or from Navigator
// helpers.
type Cursor struct {
	// Pos is the underlying document position.
	Pos document.Position
}

// At returns a cursor at the given position.
func At(p document.Position) Cursor {
	return Cursor{Pos: p}
}

// Equal reports whether two cursors address the same position.
func (c Cursor) Equal(other Cursor) bool {
	return c.Pos == other.Pos
}

// String renders the cursor for diagnostics.
func (c Cursor) String() string {
	return "cursor at " + c.Pos.String()
}

// Intent distinguishes the three kinds of sticky-column behavior carried
// across vertical movement.
type Intent int

const (
	// IntentColumn re-targets each line against an explicit x coordinate.
	IntentColumn Intent = iota
	// IntentLineStart snaps to the beginning of each line.
	IntentLineStart
	// IntentLineEnd snaps to the end of each line.
	IntentLineEnd
)

// NavState captures the horizontal intent of a vertical-movement gesture.
// It is created when the gesture starts and discarded on any non-vertical
// movement.
type NavState struct {
	Intent Intent
	X      float64
}

// ColumnTarget returns a NavState aiming for the given x coordinate.
func ColumnTarget(x float64) NavState {
	return NavState{Intent: IntentColumn, X: x}
}

// LineStartTarget returns a NavState snapping to line beginnings.
func LineStartTarget() NavState {
	return NavState{Intent: IntentLineStart}
}

// LineEndTarget returns a NavState snapping to line ends.
func LineEndTarget() NavState {
	return NavState{Intent: IntentLineEnd}
}
