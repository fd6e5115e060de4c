// Package grid provides a monospace geometry provider: every character
// occupies whole terminal cells, blocks are wrapped greedily at a fixed
// column width, and block row origins stack vertically in document order.
//
// The same layout backs two consumers: it implements [geom.Provider] for
// the cursor engine, and the terminal renderer walks it to paint cells, so
// caret geometry and painted geometry can never disagree.
package grid

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/richdoc/internal/engine/cache"
	"github.com/dshills/richdoc/internal/engine/document"
	"github.com/dshills/richdoc/internal/engine/geom"
)

// Layout lays a document out on a cell grid. It caches per-block layouts
// keyed to the block's content generation and block origins keyed to the
// document's snapshot token.
type Layout struct {
	doc    *document.Document
	cols   int
	cellW  float64
	cellH  float64
	blocks map[document.BlockID]*blockLayout

	origins cache.Value[map[document.BlockID]int]
}

// cellPos is the grid position of one character: its visual row within the
// block, starting column, and width in cells.
type cellPos struct {
	row, col, width int
}

type blockLayout struct {
	gen   cache.Token
	cells []cellPos // indexed by character offset; one extra for the end position
	rows  int
}

// Option configures a Layout.
type Option func(*Layout)

// WithWrapWidth sets the wrap width in columns. Zero or negative disables
// wrapping: every block is a single visual row.
func WithWrapWidth(cols int) Option {
	return func(l *Layout) {
		l.cols = cols
	}
}

// WithCellSize sets the size of one grid cell in provider coordinates.
// The default is 1x1, which makes coordinates and cells interchangeable.
func WithCellSize(w, h float64) Option {
	return func(l *Layout) {
		if w > 0 && h > 0 {
			l.cellW, l.cellH = w, h
		}
	}
}

// New creates a layout for doc.
func New(doc *document.Document, opts ...Option) *Layout {
	l := &Layout{
		doc:    doc,
		cellW:  1,
		cellH:  1,
		blocks: make(map[document.BlockID]*blockLayout),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CellSize returns the size of one grid cell.
func (l *Layout) CellSize() (w, h float64) {
	return l.cellW, l.cellH
}

// RectOf implements geom.Provider.
func (l *Layout) RectOf(p document.Position) (geom.Rect, bool) {
	if !l.doc.ValidPosition(p) {
		return geom.Rect{}, false
	}
	bl := l.layoutOf(p.Block)
	off := l.doc.OffsetOf(p)
	cp := bl.cells[off]
	return geom.Rect{
		Left:   float64(cp.col) * l.cellW,
		Top:    float64(l.originRow(p.Block)+cp.row) * l.cellH,
		Width:  float64(cp.width) * l.cellW,
		Height: l.cellH,
	}, true
}

// RowsOf returns the number of visual rows the block occupies.
func (l *Layout) RowsOf(b document.BlockID) int {
	return l.layoutOf(b).rows
}

// OriginRow returns the first visual row of the block in the whole
// document's row space.
func (l *Layout) OriginRow(b document.BlockID) int {
	return l.originRow(b)
}

// TotalRows returns the total number of visual rows in the document.
func (l *Layout) TotalRows() int {
	total := 0
	for _, b := range l.doc.Blocks() {
		total += l.layoutOf(b).rows
	}
	return total
}

// Sweep releases layout entries of removed blocks.
func (l *Layout) Sweep() {
	for b := range l.blocks {
		if !l.doc.IsLive(b) {
			delete(l.blocks, b)
		}
	}
}

// layoutOf returns the block's cached layout, recomputing it when the
// block's content generation moved on.
func (l *Layout) layoutOf(b document.BlockID) *blockLayout {
	gen := l.doc.BlockGen(b)
	bl := l.blocks[b]
	if bl != nil && bl.gen == gen {
		return bl
	}
	bl = l.compute(b)
	bl.gen = gen
	l.blocks[b] = bl
	return bl
}

// compute wraps the block's text greedily at the wrap width, grapheme
// cluster by grapheme cluster. Every rune of a cluster shares the
// cluster's cell; the trailing end position gets a one-cell virtual slot
// for the caret.
func (l *Layout) compute(b document.BlockID) *blockLayout {
	bl := &blockLayout{}
	row, col := 0, 0

	g := uniseg.NewGraphemes(l.doc.BlockText(b))
	for g.Next() {
		w := g.Width()
		if w < 1 {
			w = 1
		}
		if l.cols > 0 && col > 0 && col+w > l.cols {
			row++
			col = 0
		}
		for range g.Runes() {
			bl.cells = append(bl.cells, cellPos{row: row, col: col, width: w})
		}
		col += w
	}

	bl.cells = append(bl.cells, cellPos{row: row, col: col, width: 1})
	bl.rows = row + 1
	return bl
}

// originRow resolves the block's first row. Without wrapping every block
// is one row, so the block's ordinal from the incremental index cache is
// the origin directly; with wrapping the origins are accumulated in one
// document walk memoized under the snapshot token.
func (l *Layout) originRow(b document.BlockID) int {
	if l.cols <= 0 {
		return l.doc.BlockIndex(b)
	}
	origins := l.origins.Get(l.doc.Token(), func() map[document.BlockID]int {
		m := make(map[document.BlockID]int)
		acc := 0
		for _, blk := range l.doc.Blocks() {
			m[blk] = acc
			acc += l.layoutOf(blk).rows
		}
		return m
	})
	return origins[b]
}
