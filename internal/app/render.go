package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/richdoc/internal/engine/document"
	"github.com/dshills/richdoc/internal/render/theme"
)

// renderer paints a session onto a tcell screen through the same grid
// layout the navigator uses for geometry, so the caret can never disagree
// with the text under it.
type renderer struct {
	theme  *theme.Theme
	scroll int // first visible document row
}

// selSpan is a selection boundary resolved to block ordinal + offset, so
// per-character tests don't re-run position comparisons.
type selSpan struct {
	loBlock, loOff int
	hiBlock, hiOff int
	active         bool
}

func (r *renderer) draw(screen tcell.Screen, s *Session) {
	width, height := screen.Size()
	if height < 2 || width < 1 {
		return
	}
	viewRows := height - 1 // bottom row is the status line

	r.scrollTo(s, viewRows)

	screen.Fill(' ', tcell.StyleDefault.Background(r.theme.Background()))

	sel := r.selection(s)
	doc := s.Document()
	layout := s.Layout()

	for _, b := range doc.Blocks() {
		origin := layout.OriginRow(b)
		if origin+layout.RowsOf(b) <= r.scroll || origin >= r.scroll+viewRows {
			continue
		}
		r.drawBlock(screen, s, b, sel, viewRows)
	}

	r.drawStatus(screen, s, width, height-1)
	r.placeCaret(screen, s, viewRows)
	screen.Show()
}

func (r *renderer) drawBlock(screen tcell.Screen, s *Session, b document.BlockID, sel selSpan, viewRows int) {
	doc := s.Document()
	layout := s.Layout()
	blockIdx := doc.BlockIndex(b)

	off := 0
	g := uniseg.NewGraphemes(doc.BlockText(b))
	for g.Next() {
		runes := g.Runes()
		rect, ok := layout.RectOf(doc.PositionAt(b, off))
		off += len(runes)
		if !ok {
			continue
		}
		row := int(rect.Top) - r.scroll
		if row < 0 || row >= viewRows {
			continue
		}
		style := doc.StyleAt(b, off-len(runes))
		selected := sel.contains(blockIdx, off-len(runes))
		screen.SetContent(int(rect.Left), row, runes[0], runes[1:], r.theme.Cell(style, selected))
	}
}

// selection resolves the session's selection once per frame.
func (r *renderer) selection(s *Session) selSpan {
	lo, hi, ok := s.Selection()
	if !ok {
		return selSpan{}
	}
	doc := s.Document()
	return selSpan{
		loBlock: doc.BlockIndex(lo.Block), loOff: doc.OffsetOf(lo),
		hiBlock: doc.BlockIndex(hi.Block), hiOff: doc.OffsetOf(hi),
		active: true,
	}
}

// contains reports whether the character at (block ordinal, offset) falls
// inside the selection.
func (sp selSpan) contains(block, off int) bool {
	if !sp.active {
		return false
	}
	if block < sp.loBlock || block > sp.hiBlock {
		return false
	}
	if block == sp.loBlock && off < sp.loOff {
		return false
	}
	if block == sp.hiBlock && off >= sp.hiOff {
		return false
	}
	return true
}

// scrollTo keeps the caret row inside the viewport.
func (r *renderer) scrollTo(s *Session, viewRows int) {
	rect, ok := s.Navigator().CursorRect(s.Cursor())
	if !ok {
		return
	}
	row := int(rect.Top)
	if row < r.scroll {
		r.scroll = row
	}
	if row >= r.scroll+viewRows {
		r.scroll = row - viewRows + 1
	}
	if r.scroll < 0 {
		r.scroll = 0
	}
}

func (r *renderer) placeCaret(screen tcell.Screen, s *Session, viewRows int) {
	rect, ok := s.Navigator().CursorRect(s.Cursor())
	if !ok {
		screen.HideCursor()
		return
	}
	row := int(rect.Top) - r.scroll
	if row < 0 || row >= viewRows {
		screen.HideCursor()
		return
	}
	screen.ShowCursor(int(rect.Left), row)
}

func (r *renderer) drawStatus(screen tcell.Screen, s *Session, width, row int) {
	doc := s.Document()
	cur := s.Cursor()
	mark := ""
	if s.Modified() {
		mark = " [+]"
	}
	line := doc.BlockIndex(cur.Pos.Block) + 1
	col := doc.OffsetOf(cur.Pos) + 1
	status := fmt.Sprintf(" %s%s  Ln %d, Col %d ", s.Path(), mark, line, col)

	style := r.theme.Cell(document.Style{Bold: true}, true)
	x := 0
	for _, ch := range status {
		if x >= width {
			break
		}
		screen.SetContent(x, row, ch, nil, style)
		x++
	}
	for ; x < width; x++ {
		screen.SetContent(x, row, ' ', nil, style)
	}
}
