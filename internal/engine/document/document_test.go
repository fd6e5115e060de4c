package document

import (
	"reflect"
	"testing"
)

func TestNewEmpty(t *testing.T) {
	d := New("")

	if d.BlockCount() != 1 {
		t.Fatalf("expected 1 block, got %d", d.BlockCount())
	}
	b, ok := d.FirstBlock()
	if !ok {
		t.Fatal("expected a first block")
	}
	if !d.BlockIsEmpty(b) {
		t.Error("expected the single block to be empty")
	}
	if d.RunCount(b) != 1 {
		t.Errorf("expected the empty block to hold one run, got %d", d.RunCount(b))
	}
}

func TestNewMultiline(t *testing.T) {
	d := New("ab\ncd")

	if d.BlockCount() != 2 {
		t.Fatalf("expected 2 blocks, got %d", d.BlockCount())
	}
	blocks := d.Blocks()
	if d.BlockText(blocks[0]) != "ab" {
		t.Errorf("expected first block %q, got %q", "ab", d.BlockText(blocks[0]))
	}
	if d.BlockText(blocks[1]) != "cd" {
		t.Errorf("expected second block %q, got %q", "cd", d.BlockText(blocks[1]))
	}
	if d.Text() != "ab\ncd" {
		t.Errorf("expected text %q, got %q", "ab\ncd", d.Text())
	}
}

func TestSplitLineBreaks(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{""}},
		{"a", []string{"a"}},
		{"a\nb", []string{"a", "b"}},
		{"a\rb", []string{"a", "b"}},
		{"a\r\nb", []string{"a", "b"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"a\n", []string{"a", ""}},
		{"\na", []string{"", "a"}},
		{"a\r\r\nb", []string{"a", "", "b"}},
	}
	for _, c := range cases {
		got := splitLineBreaks(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("splitLineBreaks(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestBlockTraversal(t *testing.T) {
	d := New("a\nb\nc")
	blocks := d.Blocks()

	first, ok := d.FirstBlock()
	if !ok || first != blocks[0] {
		t.Error("FirstBlock disagrees with Blocks")
	}
	last, ok := d.LastBlock()
	if !ok || last != blocks[2] {
		t.Error("LastBlock disagrees with Blocks")
	}

	next, ok := d.NextBlock(blocks[0])
	if !ok || next != blocks[1] {
		t.Error("NextBlock from the first block failed")
	}
	if _, ok := d.NextBlock(blocks[2]); ok {
		t.Error("expected no block after the last")
	}
	prev, ok := d.PrevBlock(blocks[1])
	if !ok || prev != blocks[0] {
		t.Error("PrevBlock from the middle block failed")
	}
	if _, ok := d.PrevBlock(blocks[0]); ok {
		t.Error("expected no block before the first")
	}
}

func TestBlockIndex(t *testing.T) {
	d := New("a\nb\nc\nd")
	blocks := d.Blocks()

	for i, b := range blocks {
		if got := d.BlockIndex(b); got != i {
			t.Errorf("expected ordinal %d, got %d", i, got)
		}
	}
	// Out of order, hitting the cached entries.
	if got := d.BlockIndex(blocks[1]); got != 1 {
		t.Errorf("expected ordinal 1, got %d", got)
	}
}

func TestBlockIndexAfterMutation(t *testing.T) {
	d := New("a\nb\nc")
	blocks := d.Blocks()
	for i, b := range blocks {
		if got := d.BlockIndex(b); got != i {
			t.Fatalf("expected ordinal %d, got %d", i, got)
		}
	}

	nb := d.InsertBlockAfter(blocks[0], []Run{{Text: []rune("x")}})

	if got := d.BlockIndex(nb); got != 1 {
		t.Errorf("expected inserted block at ordinal 1, got %d", got)
	}
	if got := d.BlockIndex(blocks[1]); got != 2 {
		t.Errorf("expected shifted block at ordinal 2, got %d", got)
	}
	if got := d.BlockIndex(blocks[0]); got != 0 {
		t.Errorf("expected head block still at ordinal 0, got %d", got)
	}
}

func TestBlockIndexBeforeEditedBlock(t *testing.T) {
	d := New("aa\nbb\ncc")
	blocks := d.Blocks()
	for i, b := range blocks {
		if got := d.BlockIndex(b); got != i {
			t.Fatalf("expected ordinal %d, got %d", i, got)
		}
	}

	// Editing a late block leaves earlier ordinals intact; looking one of
	// them up again walks in front of the index resume point.
	d.InsertText(d.PositionAt(blocks[2], 1), "x")

	if got := d.BlockIndex(blocks[0]); got != 0 {
		t.Errorf("expected ordinal 0 after the edit, got %d", got)
	}
	if got := d.BlockIndex(blocks[1]); got != 1 {
		t.Errorf("expected ordinal 1 after the edit, got %d", got)
	}
	if got := d.BlockIndex(blocks[2]); got != 2 {
		t.Errorf("expected ordinal 2 after the edit, got %d", got)
	}
}

func TestIsLiveAfterRemoval(t *testing.T) {
	d := New("a\nb")
	blocks := d.Blocks()

	d.RemoveBlock(blocks[1])

	if d.IsLive(blocks[1]) {
		t.Error("expected removed block handle to be dead")
	}
	if !d.IsLive(blocks[0]) {
		t.Error("expected surviving block handle to stay live")
	}
}

func TestDeadHandlePanics(t *testing.T) {
	d := New("a\nb")
	blocks := d.Blocks()
	d.RemoveBlock(blocks[1])

	defer func() {
		if recover() == nil {
			t.Error("expected a panic on a dead handle")
		}
	}()
	d.BlockText(blocks[1])
}

func TestStartEndOf(t *testing.T) {
	d := New("abc")
	b, _ := d.FirstBlock()

	start := d.StartOf(b)
	if start.Run != 0 || start.Off != 0 {
		t.Errorf("unexpected block start %v", start)
	}
	end := d.EndOf(b)
	if end.Off != 3 {
		t.Errorf("expected end offset 3, got %d", end.Off)
	}
	if !d.AtBlockStart(start) || d.AtBlockEnd(start) {
		t.Error("start position misclassified")
	}
	if !d.AtBlockEnd(end) || d.AtBlockStart(end) {
		t.Error("end position misclassified")
	}
}

func TestCanonicalFormAtRunBoundary(t *testing.T) {
	d := New("")
	b, _ := d.FirstBlock()
	bold := Style{Bold: true}
	d.InsertRuns(d.StartOf(b), []Run{
		{Text: []rune("ab")},
		{Style: bold, Text: []rune("cd")},
	})

	// The boundary between the runs addresses offset 0 of the second run.
	p := d.Canonical(Position{Block: b, Run: 0, Off: 2})
	if p.Run != 1 || p.Off != 0 {
		t.Errorf("expected run 1 offset 0, got run %d offset %d", p.Run, p.Off)
	}

	// The block end stays on the last run.
	p = d.Canonical(Position{Block: b, Run: 1, Off: 2})
	if p.Run != 1 || p.Off != 2 {
		t.Errorf("expected run 1 offset 2, got run %d offset %d", p.Run, p.Off)
	}
}

func TestOffsetRoundtrip(t *testing.T) {
	d := New("")
	b, _ := d.FirstBlock()
	d.InsertRuns(d.StartOf(b), []Run{
		{Text: []rune("ab")},
		{Style: Style{Italic: true}, Text: []rune("cde")},
	})

	for off := 0; off <= 5; off++ {
		p := d.PositionAt(b, off)
		if got := d.OffsetOf(p); got != off {
			t.Errorf("offset %d roundtripped to %d via %v", off, got, p)
		}
	}
}

func TestPositionAtClamps(t *testing.T) {
	d := New("abc")
	b, _ := d.FirstBlock()

	p := d.PositionAt(b, 99)
	if d.OffsetOf(p) != 3 {
		t.Errorf("expected clamp to block end, got offset %d", d.OffsetOf(p))
	}
	p = d.PositionAt(b, -5)
	if d.OffsetOf(p) != 0 {
		t.Errorf("expected clamp to block start, got offset %d", d.OffsetOf(p))
	}
}

func TestRuneAround(t *testing.T) {
	d := New("ab")
	b, _ := d.FirstBlock()

	if r, ok := d.RuneAfter(d.StartOf(b)); !ok || r != 'a' {
		t.Errorf("expected 'a' after start, got %q (ok=%v)", r, ok)
	}
	if _, ok := d.RuneAfter(d.EndOf(b)); ok {
		t.Error("expected no rune after the block end")
	}
	if r, ok := d.RuneBefore(d.EndOf(b)); !ok || r != 'b' {
		t.Errorf("expected 'b' before end, got %q (ok=%v)", r, ok)
	}
	if _, ok := d.RuneBefore(d.StartOf(b)); ok {
		t.Error("expected no rune before the block start")
	}
}

func TestRuneBeforeAcrossRunBoundary(t *testing.T) {
	d := New("")
	b, _ := d.FirstBlock()
	d.InsertRuns(d.StartOf(b), []Run{
		{Text: []rune("a")},
		{Style: Style{Bold: true}, Text: []rune("b")},
	})

	p := Position{Block: b, Run: 1, Off: 0}
	if r, ok := d.RuneBefore(p); !ok || r != 'a' {
		t.Errorf("expected 'a' before the run boundary, got %q (ok=%v)", r, ok)
	}
}

func TestCompare(t *testing.T) {
	d := New("ab\ncd")
	blocks := d.Blocks()

	a := d.StartOf(blocks[0])
	b := d.EndOf(blocks[0])
	c := d.StartOf(blocks[1])

	if d.Compare(a, b) != -1 {
		t.Error("expected start < end within a block")
	}
	if d.Compare(c, b) != 1 {
		t.Error("expected later block > earlier block")
	}
	if d.Compare(a, a) != 0 {
		t.Error("expected equal positions to compare 0")
	}

	// The run boundary and the equivalent end offset compare equal.
	end := Position{Block: blocks[0], Run: 0, Off: 2}
	if d.Compare(end, d.EndOf(blocks[0])) != 0 {
		t.Error("expected canonical and raw forms of the same point to compare 0")
	}
}

func TestStyleAt(t *testing.T) {
	d := New("")
	b, _ := d.FirstBlock()
	bold := Style{Bold: true}
	d.InsertRuns(d.StartOf(b), []Run{
		{Text: []rune("ab")},
		{Style: bold, Text: []rune("cd")},
	})

	if got := d.StyleAt(b, 0); got != Plain {
		t.Errorf("expected plain at offset 0, got %+v", got)
	}
	if got := d.StyleAt(b, 2); got != bold {
		t.Errorf("expected bold at offset 2, got %+v", got)
	}
	if got := d.StyleAt(b, 4); got != bold {
		t.Errorf("expected last run's style at the block end, got %+v", got)
	}
}

func TestTokenAdvancesOnMutation(t *testing.T) {
	d := New("ab")
	b, _ := d.FirstBlock()

	before := d.Token()
	d.InsertText(d.EndOf(b), "c")
	after := d.Token()

	if after == before {
		t.Error("expected the snapshot token to advance on mutation")
	}
}

// checkInvariants verifies the run invariants of every block: at least one
// run, an empty run only as the sole run, no adjacent same-style runs.
func checkInvariants(t *testing.T, d *Document) {
	t.Helper()
	for _, b := range d.Blocks() {
		n := d.RunCount(b)
		if n < 1 {
			t.Errorf("block %d has no runs", b)
			continue
		}
		for i := 0; i < n; i++ {
			if d.RunLen(b, i) == 0 && n > 1 {
				t.Errorf("block %d holds an empty run among %d runs", b, n)
			}
			if i > 0 && d.RunAt(b, i).Style == d.RunAt(b, i-1).Style {
				t.Errorf("block %d holds adjacent same-style runs at %d", b, i)
			}
		}
	}
}
