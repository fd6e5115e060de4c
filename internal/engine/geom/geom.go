// Package geom defines the geometry boundary between the document engine
// and whatever lays the text out on screen. The engine consumes rectangles
// through the Provider interface and memoizes them in a token-guarded side
// table; it never paints and never invalidates the provider's own caches.
package geom

import (
	"github.com/dshills/richdoc/internal/engine/document"
)

// Rect is an axis-aligned rectangle in the provider's shared coordinate
// space. Y grows downward.
type Rect struct {
	Left, Top, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// DefaultInlineTolerance absorbs sub-cell rounding in the inline test. Half
// a cell suits grid providers; providers with fractional font metrics
// should configure their own value.
const DefaultInlineTolerance = 0.5

// InlineWith reports whether r and other sit on the same visual line: of
// the two, take the one with the smaller top; the pair is inline when the
// other's top lies above that rectangle's bottom edge, minus tol to forgive
// rounding.
func (r Rect) InlineWith(other Rect, tol float64) bool {
	first, second := r, other
	if second.Top < first.Top {
		first, second = second, first
	}
	return second.Top < first.Top+first.Height-tol
}

// Provider supplies the on-screen rectangle of an addressable position.
// Results must be stable between calls absent a structural or viewport
// change.
type Provider interface {
	RectOf(p document.Position) (Rect, bool)
}
