package grid

import (
	"testing"

	"github.com/dshills/richdoc/internal/engine/document"
)

func TestRectOfUnwrapped(t *testing.T) {
	d := document.New("abc\ndef")
	l := New(d)
	blocks := d.Blocks()

	r, ok := l.RectOf(d.PositionAt(blocks[1], 2))
	if !ok {
		t.Fatal("expected a rect")
	}
	if r.Left != 2 || r.Top != 1 || r.Width != 1 || r.Height != 1 {
		t.Errorf("expected cell (2,1), got %v", r)
	}
}

func TestRectOfEndPosition(t *testing.T) {
	d := document.New("abc")
	l := New(d)
	b, _ := d.FirstBlock()

	r, ok := l.RectOf(d.EndOf(b))
	if !ok {
		t.Fatal("expected a rect for the end position")
	}
	if r.Left != 3 || r.Width != 1 {
		t.Errorf("expected a one-cell caret slot at column 3, got %v", r)
	}
}

func TestRectOfInvalidPosition(t *testing.T) {
	d := document.New("ab")
	l := New(d)
	b, _ := d.FirstBlock()

	if _, ok := l.RectOf(document.Position{Block: b, Run: 0, Off: 99}); ok {
		t.Error("expected an invalid position to be rejected")
	}
}

func TestWrapping(t *testing.T) {
	d := document.New("abcdef")
	l := New(d, WithWrapWidth(4))
	b, _ := d.FirstBlock()

	if got := l.RowsOf(b); got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}
	r, _ := l.RectOf(d.PositionAt(b, 4))
	if r.Left != 0 || r.Top != 1 {
		t.Errorf("expected offset 4 at cell (0,1), got %v", r)
	}
	r, _ = l.RectOf(d.PositionAt(b, 3))
	if r.Left != 3 || r.Top != 0 {
		t.Errorf("expected offset 3 at cell (3,0), got %v", r)
	}
}

func TestWideRuneOccupiesTwoCells(t *testing.T) {
	d := document.New("a漢b")
	l := New(d)
	b, _ := d.FirstBlock()

	r, _ := l.RectOf(d.PositionAt(b, 1))
	if r.Left != 1 || r.Width != 2 {
		t.Errorf("expected a two-cell rect at column 1, got %v", r)
	}
	r, _ = l.RectOf(d.PositionAt(b, 2))
	if r.Left != 3 {
		t.Errorf("expected the following character at column 3, got %v", r)
	}
}

func TestCombiningMarkSharesCell(t *testing.T) {
	// e plus a combining acute accent is one grapheme cluster of two runes.
	d := document.New("e\u0301x")
	l := New(d)
	b, _ := d.FirstBlock()

	r0, _ := l.RectOf(d.PositionAt(b, 0))
	r1, _ := l.RectOf(d.PositionAt(b, 1))
	if r0 != r1 {
		t.Errorf("expected both runes of the cluster in one cell, got %v and %v", r0, r1)
	}
	r2, _ := l.RectOf(d.PositionAt(b, 2))
	if r2.Left != 1 {
		t.Errorf("expected the next cluster at column 1, got %v", r2)
	}
}

func TestWideRuneWrapsWhole(t *testing.T) {
	// The double-width rune does not fit in the last column and wraps.
	d := document.New("abc漢")
	l := New(d, WithWrapWidth(4))
	b, _ := d.FirstBlock()

	r, _ := l.RectOf(d.PositionAt(b, 3))
	if r.Top != 1 || r.Left != 0 {
		t.Errorf("expected the wide rune on the next row, got %v", r)
	}
}

func TestOriginRows(t *testing.T) {
	d := document.New("abcdef\nxy\nz")
	l := New(d, WithWrapWidth(3))
	blocks := d.Blocks()

	rows0 := l.RowsOf(blocks[0])
	if rows0 != 2 {
		t.Fatalf("expected the first block on 2 rows, got %d", rows0)
	}
	if got := l.OriginRow(blocks[0]); got != 0 {
		t.Errorf("expected origin 0, got %d", got)
	}
	if got := l.OriginRow(blocks[1]); got != rows0 {
		t.Errorf("expected origin %d, got %d", rows0, got)
	}
	if got := l.TotalRows(); got != rows0+2 {
		t.Errorf("expected %d total rows, got %d", rows0+2, got)
	}
}

func TestOriginRowsUnwrapped(t *testing.T) {
	d := document.New("a\nb\nc")
	l := New(d)
	blocks := d.Blocks()

	for i, b := range blocks {
		if got := l.OriginRow(b); got != i {
			t.Errorf("expected origin %d, got %d", i, got)
		}
	}
	if got := l.TotalRows(); got != 3 {
		t.Errorf("expected 3 total rows, got %d", got)
	}
}

func TestLayoutTracksEdits(t *testing.T) {
	d := document.New("ab")
	l := New(d)
	b, _ := d.FirstBlock()

	l.RectOf(d.PositionAt(b, 1))
	d.InsertText(d.StartOf(b), "xx")
	r, _ := l.RectOf(d.PositionAt(b, 3))

	if r.Left != 3 {
		t.Errorf("expected the layout recomputed after the edit, got %v", r)
	}
}

func TestOriginsTrackBlockInsertion(t *testing.T) {
	d := document.New("a\nb")
	l := New(d, WithWrapWidth(10))
	blocks := d.Blocks()

	if got := l.OriginRow(blocks[1]); got != 1 {
		t.Fatalf("expected origin 1, got %d", got)
	}
	d.InsertBlockBefore(blocks[0], []document.Run{{Text: []rune("x")}})
	if got := l.OriginRow(blocks[1]); got != 2 {
		t.Errorf("expected origin 2 after the insertion, got %d", got)
	}
}

func TestCellSizeScalesRects(t *testing.T) {
	d := document.New("ab")
	l := New(d, WithCellSize(8, 16))
	b, _ := d.FirstBlock()

	r, _ := l.RectOf(d.PositionAt(b, 1))
	if r.Left != 8 || r.Height != 16 {
		t.Errorf("expected a scaled rect, got %v", r)
	}
}

func TestSweepKeepsLiveBlocks(t *testing.T) {
	d := document.New("a\nb")
	l := New(d)
	blocks := d.Blocks()
	l.RectOf(d.StartOf(blocks[1]))

	d.RemoveBlock(blocks[1])
	l.Sweep()

	if _, ok := l.RectOf(d.StartOf(blocks[0])); !ok {
		t.Error("expected the surviving block to keep its layout")
	}
}
