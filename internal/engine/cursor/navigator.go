package cursor

import (
	"github.com/dshills/richdoc/internal/engine/charclass"
	"github.com/dshills/richdoc/internal/engine/document"
	"github.com/dshills/richdoc/internal/engine/geom"
)

// Navigator executes cursor movement against one document. It owns the
// token-guarded rectangle cache wrapping the geometry provider.
type Navigator struct {
	doc     *document.Document
	rects   *geom.Cache
	classes charclass.Classifier
	tol     float64
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithClassifier sets the character classifier used for word navigation.
func WithClassifier(c charclass.Classifier) Option {
	return func(n *Navigator) {
		if c != nil {
			n.classes = c
		}
	}
}

// WithInlineTolerance sets the tolerance of the same-line predicate, in
// the provider's coordinate units.
func WithInlineTolerance(tol float64) Option {
	return func(n *Navigator) {
		if tol >= 0 {
			n.tol = tol
		}
	}
}

// New creates a navigator for doc using the given geometry provider.
func New(doc *document.Document, provider geom.Provider, opts ...Option) *Navigator {
	n := &Navigator{
		doc:     doc,
		rects:   geom.NewCache(doc, provider),
		classes: charclass.Unicode{},
		tol:     geom.DefaultInlineTolerance,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Document returns the navigator's document.
func (n *Navigator) Document() *document.Document {
	return n.doc
}

// DocumentStart returns a cursor at the first position of the document.
func (n *Navigator) DocumentStart() Cursor {
	first, ok := n.doc.FirstBlock()
	if !ok {
		panic("cursor: document has no blocks")
	}
	return At(n.doc.StartOf(first))
}

// DocumentEnd returns a cursor at the last position of the document.
func (n *Navigator) DocumentEnd() Cursor {
	last, ok := n.doc.LastBlock()
	if !ok {
		panic("cursor: document has no blocks")
	}
	return At(n.doc.EndOf(last))
}

// CursorRect returns the caret rectangle for c, for the presentation layer
// to paint.
func (n *Navigator) CursorRect(c Cursor) (geom.Rect, bool) {
	return n.rects.RectOf(c.Pos)
}

// Sweep releases rectangle cache entries of removed blocks.
func (n *Navigator) Sweep() {
	n.rects.Sweep()
}

// ForwardInBlock steps one character forward within the current block,
// crossing run boundaries transparently. Reports false at the block end
// without moving.
func (n *Navigator) ForwardInBlock(c *Cursor) bool {
	d := n.doc
	p := d.Canonical(c.Pos)
	if d.AtBlockEnd(p) {
		return false
	}
	p.Off++
	c.Pos = d.Canonical(p)
	return true
}

// BackwardInBlock steps one character backward within the current block.
// Reports false at the block start without moving.
func (n *Navigator) BackwardInBlock(c *Cursor) bool {
	d := n.doc
	p := d.Canonical(c.Pos)
	if d.AtBlockStart(p) {
		return false
	}
	if p.Off == 0 {
		p.Run--
		p.Off = d.RunLen(p.Block, p.Run)
	}
	p.Off--
	c.Pos = d.Canonical(p)
	return true
}

// Forward steps one position forward, crossing into the next block at a
// block end. Reports false only at the document end.
func (n *Navigator) Forward(c *Cursor) bool {
	if n.ForwardInBlock(c) {
		return true
	}
	next, ok := n.doc.NextBlock(c.Pos.Block)
	if !ok {
		return false
	}
	c.Pos = n.doc.StartOf(next)
	return true
}

// Backward steps one position backward, crossing into the previous block
// at a block start. Reports false only at the document start.
func (n *Navigator) Backward(c *Cursor) bool {
	if n.BackwardInBlock(c) {
		return true
	}
	prev, ok := n.doc.PrevBlock(c.Pos.Block)
	if !ok {
		return false
	}
	c.Pos = n.doc.EndOf(prev)
	return true
}

// ToBlockStart snaps c to the first position of block b.
func (n *Navigator) ToBlockStart(c *Cursor, b document.BlockID) {
	c.Pos = n.doc.StartOf(b)
}

// ToBlockEnd snaps c to the last position of block b.
func (n *Navigator) ToBlockEnd(c *Cursor, b document.BlockID) {
	c.Pos = n.doc.EndOf(b)
}
