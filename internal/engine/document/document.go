package document

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/richdoc/internal/engine/cache"
)

// Block is an ordered sequence of runs plus a content generation counter.
// Blocks are owned exclusively by their document and reached through
// BlockID handles.
type Block struct {
	runs []Run
	gen  cache.Token
}

type blockSlot struct {
	prev, next BlockID
	block      Block
	live       bool
	sentinel   bool
}

// Document is an ordered sequence of blocks bounded by two permanent
// sentinel slots. It owns the snapshot token counter and the incremental
// block-index cache.
type Document struct {
	// ID identifies the document across sessions and log lines.
	ID uuid.UUID

	slots  []blockSlot
	free   []BlockID
	tokens *cache.Counter
	index  *cache.Index[BlockID]
}

// New creates a document from initial plain text, split on line breaks into
// one block per line. CR, LF and CRLF each count as exactly one break; a
// bare CR is discarded. Empty text yields a single empty block.
func New(text string) *Document {
	d := &Document{
		ID:     uuid.New(),
		tokens: cache.NewCounter(),
		index:  cache.NewIndex[BlockID](),
	}
	d.slots = make([]blockSlot, 2, 8)
	d.slots[sentinelStart] = blockSlot{prev: noBlock, next: sentinelEnd, sentinel: true}
	d.slots[sentinelEnd] = blockSlot{prev: sentinelStart, next: noBlock, sentinel: true}

	for _, line := range splitLineBreaks(text) {
		id := d.newBlock([]Run{{Text: []rune(line)}})
		d.linkBefore(sentinelEnd, id)
	}
	return d
}

// splitLineBreaks divides text into line fragments, treating CR, LF and
// CRLF each as exactly one break. The break characters themselves are
// discarded. Empty input yields a single empty fragment.
func splitLineBreaks(s string) []string {
	var lines []string
	start := 0
	i := 0
	for i < len(s) {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			i++
			start = i
		case '\r':
			lines = append(lines, s[start:i])
			i++
			if i < len(s) && s[i] == '\n' {
				i++
			}
			start = i
		default:
			i++
		}
	}
	return append(lines, s[start:])
}

// Token returns the current snapshot token. Cached values stamped with an
// older token were computed before the most recent structural mutation.
func (d *Document) Token() cache.Token {
	return d.tokens.Current()
}

// IsLive reports whether b is the handle of a live block.
func (d *Document) IsLive(b BlockID) bool {
	return b >= 0 && int(b) < len(d.slots) && d.slots[b].live
}

// blk returns the live block for b, panicking on dead or sentinel handles.
// Invalid handles indicate a broken invariant upstream.
func (d *Document) blk(b BlockID) *Block {
	if !d.IsLive(b) {
		panic("document: operation on dead or invalid block handle")
	}
	return &d.slots[b].block
}

// newBlock allocates a block slot, reusing freed slots when available.
// The caller links it into the chain.
func (d *Document) newBlock(runs []Run) BlockID {
	runs = ensureRuns(runs, Plain)
	if n := len(d.free); n > 0 {
		id := d.free[n-1]
		d.free = d.free[:n-1]
		d.slots[id] = blockSlot{block: Block{runs: runs, gen: 1}, live: true}
		return id
	}
	d.slots = append(d.slots, blockSlot{block: Block{runs: runs, gen: 1}, live: true})
	return BlockID(len(d.slots) - 1)
}

// linkBefore inserts block id immediately before pivot. pivot may be the
// end sentinel; id must be an unlinked live block.
func (d *Document) linkBefore(pivot, id BlockID) {
	prev := d.slots[pivot].prev
	d.slots[id].prev = prev
	d.slots[id].next = pivot
	d.slots[prev].next = id
	d.slots[pivot].prev = id
}

// linkAfter inserts block id immediately after pivot.
func (d *Document) linkAfter(pivot, id BlockID) {
	next := d.slots[pivot].next
	d.slots[id].next = next
	d.slots[id].prev = pivot
	d.slots[next].prev = id
	d.slots[pivot].next = id
}

// unlink detaches a live block from the chain and frees its slot. The
// block's runs are returned to the caller.
func (d *Document) unlink(b BlockID) []Run {
	slot := &d.slots[b]
	d.slots[slot.prev].next = slot.next
	d.slots[slot.next].prev = slot.prev
	runs := slot.block.runs
	*slot = blockSlot{}
	d.free = append(d.free, b)
	d.index.Drop(b)
	return runs
}

// commit finalizes a structural mutation: it bumps the snapshot token once
// and rewinds the block-index resume point to pred, the last block whose
// ordinal the mutation left intact. pred is a sentinel (reported dead here)
// when the mutation touched the head of the document.
func (d *Document) commit(pred BlockID) {
	old := d.tokens.Current()
	current := d.tokens.Bump()
	d.index.Rewind(pred, d.IsLive(pred), old, current)
}

// bumpGen advances a block's content generation, fully invalidating
// character-level caches keyed to the block.
func (d *Document) bumpGen(b BlockID) {
	blk := d.blk(b)
	blk.gen = cache.Next(blk.gen)
}

// BlockGen returns the block's content generation counter.
func (d *Document) BlockGen(b BlockID) cache.Token {
	return d.blk(b).gen
}

// Block traversal. First/Last report false on a document with no blocks,
// Next/Prev report false at the document boundary.

// FirstBlock returns the first live block.
func (d *Document) FirstBlock() (BlockID, bool) {
	b := d.slots[sentinelStart].next
	return b, b != sentinelEnd
}

// LastBlock returns the last live block.
func (d *Document) LastBlock() (BlockID, bool) {
	b := d.slots[sentinelEnd].prev
	return b, b != sentinelStart
}

// NextBlock returns the block following b.
func (d *Document) NextBlock(b BlockID) (BlockID, bool) {
	d.blk(b)
	n := d.slots[b].next
	return n, n != sentinelEnd
}

// PrevBlock returns the block preceding b.
func (d *Document) PrevBlock(b BlockID) (BlockID, bool) {
	d.blk(b)
	p := d.slots[b].prev
	return p, p != sentinelStart
}

// Blocks returns the live blocks in document order.
func (d *Document) Blocks() []BlockID {
	var out []BlockID
	for b := d.slots[sentinelStart].next; b != sentinelEnd; b = d.slots[b].next {
		out = append(out, b)
	}
	return out
}

// BlockCount returns the number of live blocks.
func (d *Document) BlockCount() int {
	n := 0
	for b := d.slots[sentinelStart].next; b != sentinelEnd; b = d.slots[b].next {
		n++
	}
	return n
}

// BlockIndex returns the ordinal position of b among the live blocks,
// served from the incremental index cache.
func (d *Document) BlockIndex(b BlockID) int {
	d.blk(b)
	ord, ok := d.index.Lookup(d.Token(), b,
		func() (BlockID, bool) { return d.FirstBlock() },
		func(k BlockID) (BlockID, bool) { return d.NextBlock(k) },
	)
	if !ok {
		panic("document: block unreachable from document head")
	}
	return ord
}

// Block content access.

// RunCount returns the number of runs in a block; always at least one.
func (d *Document) RunCount(b BlockID) int {
	return len(d.blk(b).runs)
}

// RunLen returns the character count of run i of block b.
func (d *Document) RunLen(b BlockID, i int) int {
	runs := d.blk(b).runs
	if i < 0 || i >= len(runs) {
		panic("document: run index out of range")
	}
	return len(runs[i].Text)
}

// RunAt returns run i of block b. The returned run shares its text backing
// with the document; treat it as read-only.
func (d *Document) RunAt(b BlockID, i int) Run {
	runs := d.blk(b).runs
	if i < 0 || i >= len(runs) {
		panic("document: run index out of range")
	}
	return runs[i]
}

// BlockLen returns the total character count of a block.
func (d *Document) BlockLen(b BlockID) int {
	return runsLen(d.blk(b).runs)
}

// BlockIsEmpty reports whether the block holds no characters.
func (d *Document) BlockIsEmpty(b BlockID) bool {
	return d.BlockLen(b) == 0
}

// BlockText returns the block's characters as a string.
func (d *Document) BlockText(b BlockID) string {
	return runsText(d.blk(b).runs)
}

// StyleAt returns the style governing the character at offset off of block
// b. For the end-of-block offset it returns the style of the last run.
func (d *Document) StyleAt(b BlockID, off int) Style {
	runs := d.blk(b).runs
	for _, r := range runs {
		if off < len(r.Text) {
			return r.Style
		}
		off -= len(r.Text)
	}
	return runs[len(runs)-1].Style
}

// Text returns the whole document as plain text with LF line breaks.
func (d *Document) Text() string {
	var sb strings.Builder
	first := true
	for b := d.slots[sentinelStart].next; b != sentinelEnd; b = d.slots[b].next {
		if !first {
			sb.WriteByte('\n')
		}
		first = false
		sb.WriteString(runsText(d.slots[b].block.runs))
	}
	return sb.String()
}

// Positions.

// StartOf returns the first addressable position of a block.
func (d *Document) StartOf(b BlockID) Position {
	d.blk(b)
	return Position{Block: b}
}

// EndOf returns the last addressable position of a block.
func (d *Document) EndOf(b BlockID) Position {
	runs := d.blk(b).runs
	last := len(runs) - 1
	return Position{Block: b, Run: last, Off: len(runs[last].Text)}
}

// ValidPosition reports whether p addresses a point inside a live block.
func (d *Document) ValidPosition(p Position) bool {
	if !d.IsLive(p.Block) {
		return false
	}
	runs := d.slots[p.Block].block.runs
	if p.Run < 0 || p.Run >= len(runs) {
		return false
	}
	return p.Off >= 0 && p.Off <= len(runs[p.Run].Text)
}

// mustPosition panics unless p is valid, returning it canonicalized.
func (d *Document) mustPosition(p Position) Position {
	if !d.ValidPosition(p) {
		panic("document: invalid position " + p.String())
	}
	return d.Canonical(p)
}

// Canonical returns p in canonical form: an offset equal to a run's length
// becomes offset 0 of the following run, except on the last run.
func (d *Document) Canonical(p Position) Position {
	runs := d.blk(p.Block).runs
	for p.Run < len(runs)-1 && p.Off == len(runs[p.Run].Text) {
		p.Run++
		p.Off = 0
	}
	return p
}

// AtBlockStart reports whether p is the first position of its block.
func (d *Document) AtBlockStart(p Position) bool {
	p = d.mustPosition(p)
	return p.Run == 0 && p.Off == 0
}

// AtBlockEnd reports whether p is the last position of its block.
func (d *Document) AtBlockEnd(p Position) bool {
	p = d.mustPosition(p)
	runs := d.blk(p.Block).runs
	return p.Run == len(runs)-1 && p.Off == len(runs[p.Run].Text)
}

// OffsetOf returns p's character offset from the start of its block.
func (d *Document) OffsetOf(p Position) int {
	p = d.mustPosition(p)
	runs := d.blk(p.Block).runs
	off := p.Off
	for i := 0; i < p.Run; i++ {
		off += len(runs[i].Text)
	}
	return off
}

// PositionAt returns the canonical position at character offset off of
// block b, clamped to the block end.
func (d *Document) PositionAt(b BlockID, off int) Position {
	runs := d.blk(b).runs
	if off < 0 {
		off = 0
	}
	for i, r := range runs {
		if off < len(r.Text) || i == len(runs)-1 {
			if off > len(r.Text) {
				off = len(r.Text)
			}
			return d.Canonical(Position{Block: b, Run: i, Off: off})
		}
		off -= len(r.Text)
	}
	return Position{Block: b}
}

// RuneAfter returns the character immediately after p, reporting false at
// the block end.
func (d *Document) RuneAfter(p Position) (rune, bool) {
	p = d.mustPosition(p)
	runs := d.blk(p.Block).runs
	if p.Off < len(runs[p.Run].Text) {
		return runs[p.Run].Text[p.Off], true
	}
	return 0, false
}

// RuneBefore returns the character immediately before p, reporting false at
// the block start.
func (d *Document) RuneBefore(p Position) (rune, bool) {
	p = d.mustPosition(p)
	runs := d.blk(p.Block).runs
	if p.Off > 0 {
		return runs[p.Run].Text[p.Off-1], true
	}
	if p.Run > 0 {
		prev := runs[p.Run-1].Text
		return prev[len(prev)-1], true
	}
	return 0, false
}

// Compare orders two positions in document order: -1, 0 or 1.
func (d *Document) Compare(a, b Position) int {
	a, b = d.mustPosition(a), d.mustPosition(b)
	if a.Block != b.Block {
		ai, bi := d.BlockIndex(a.Block), d.BlockIndex(b.Block)
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
	}
	ao, bo := d.OffsetOf(a), d.OffsetOf(b)
	switch {
	case ao < bo:
		return -1
	case ao > bo:
		return 1
	}
	return 0
}
