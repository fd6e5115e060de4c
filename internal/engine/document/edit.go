package document

// InsertText inserts text at p, splitting it on line breaks (CR, LF and
// CRLF each one break) into fragments. The first fragment is inserted at p;
// each further fragment goes into a block split off at the advanced
// position. Inserted characters take the style in effect at p. Returns the
// position immediately after the last inserted character.
//
// The snapshot token is bumped exactly once per call, however many
// fragments and block splits the text produced.
func (d *Document) InsertText(p Position, text string) Position {
	p = d.mustPosition(p)
	pred := d.slots[p.Block].prev
	style := d.StyleAt(p.Block, d.OffsetOf(p))

	frags := splitLineBreaks(text)
	p = d.insertRunsAt(p, []Run{{Style: style, Text: []rune(frags[0])}})
	for _, frag := range frags[1:] {
		p = d.splitBlock(p)
		next := d.slots[p.Block].next
		if next == sentinelEnd {
			panic("document: split produced no following block")
		}
		p = d.StartOf(next)
		p = d.insertRunsAt(p, []Run{{Style: style, Text: []rune(frag)}})
	}

	d.commit(pred)
	return p
}

// InsertRuns inserts styled content at p without splitting on line breaks,
// returning the position after the inserted content. Zero-length runs in
// content are dropped; adjacent same-style runs coalesce.
func (d *Document) InsertRuns(p Position, content []Run) Position {
	p = d.mustPosition(p)
	pred := d.slots[p.Block].prev
	p = d.insertRunsAt(p, content)
	d.commit(pred)
	return p
}

// insertRunsAt splices content into p's block at p, maintaining the run
// invariants, and returns the position immediately after the content. It
// never produces an empty run: an empty target block loses its placeholder
// run first, and same-style seams coalesce.
func (d *Document) insertRunsAt(p Position, content []Run) Position {
	content = normalizeRuns(content)
	if len(content) == 0 {
		return p
	}
	b := p.Block
	blk := d.blk(b)
	off := d.OffsetOf(p)
	n := runsLen(content)

	if runsLen(blk.runs) == 0 {
		blk.runs = content
	} else {
		left, right := splitRuns(blk.runs, off)
		blk.runs = concatRuns(concatRuns(left, content), right)
	}
	d.bumpGen(b)
	return d.PositionAt(b, off+n)
}

// SplitBlock splits p's block in two. Three exclusive cases:
//
//  1. p at block start: a new empty block is inserted immediately before,
//     and the returned position is the end of that new block.
//  2. p at block end: a new empty block is inserted immediately after, and
//     the returned position is p unchanged.
//  3. p interior: everything from p to the block end moves into a new block
//     appended immediately after, dividing a run in two if p falls mid-run.
//     The returned position is the end of the retained prefix.
func (d *Document) SplitBlock(p Position) Position {
	p = d.mustPosition(p)
	pred := d.slots[p.Block].prev
	res := d.splitBlock(p)
	d.commit(pred)
	return res
}

func (d *Document) splitBlock(p Position) Position {
	b := p.Block
	switch {
	case d.AtBlockStart(p):
		nb := d.newBlock([]Run{{Style: d.blk(b).runs[0].Style}})
		d.linkBefore(b, nb)
		return d.EndOf(nb)
	case d.AtBlockEnd(p):
		last := d.blk(b).runs[len(d.blk(b).runs)-1]
		nb := d.newBlock([]Run{{Style: last.Style}})
		d.linkAfter(b, nb)
		return p
	default:
		blk := d.blk(b)
		style := blk.runs[0].Style
		left, right := splitRuns(blk.runs, d.OffsetOf(p))
		blk.runs = ensureRuns(left, style)
		d.bumpGen(b)
		nb := d.newBlock(right)
		d.linkAfter(b, nb)
		return d.EndOf(b)
	}
}

// MergeBlocks appends the content of from to into and removes from. If from
// is empty it is simply removed. The returned position marks the seam: the
// end of into's original content (its start when into itself was empty), a
// position that survives run coalescing at the seam.
func (d *Document) MergeBlocks(into, from BlockID) Position {
	d.blk(into)
	d.blk(from)
	if into == from {
		panic("document: merging a block into itself")
	}
	pred := d.slots[from].prev
	res := d.mergeBlocks(into, from)
	d.commit(pred)
	return res
}

func (d *Document) mergeBlocks(into, from BlockID) Position {
	if d.BlockIsEmpty(from) {
		d.unlink(from)
		return d.EndOf(into)
	}
	content := normalizeRuns(d.unlink(from))
	blk := d.blk(into)
	if runsLen(blk.runs) == 0 {
		blk.runs = content
		d.bumpGen(into)
		return d.StartOf(into)
	}
	seam := runsLen(blk.runs)
	blk.runs = concatRuns(blk.runs, content)
	d.bumpGen(into)
	return d.PositionAt(into, seam)
}

// RemoveBlock detaches a block from the document and returns its content
// for reuse. Removing the last remaining block is a programming error: a
// document always holds at least one block.
func (d *Document) RemoveBlock(b BlockID) []Run {
	d.blk(b)
	if d.BlockCount() == 1 {
		panic("document: removing the only block")
	}
	pred := d.slots[b].prev
	runs := d.unlink(b)
	d.commit(pred)
	return runs
}

// InsertBlockBefore inserts a new block holding content immediately before
// pivot and returns its handle. Nil content yields an empty block.
func (d *Document) InsertBlockBefore(pivot BlockID, content []Run) BlockID {
	d.blk(pivot)
	pred := d.slots[pivot].prev
	nb := d.newBlock(content)
	d.linkBefore(pivot, nb)
	d.commit(pred)
	return nb
}

// InsertBlockAfter inserts a new block holding content immediately after
// pivot and returns its handle.
func (d *Document) InsertBlockAfter(pivot BlockID, content []Run) BlockID {
	d.blk(pivot)
	nb := d.newBlock(content)
	d.linkAfter(pivot, nb)
	d.commit(pivot)
	return nb
}

// AppendToBlock appends styled content to the end of a block, maintaining
// the run invariants.
func (d *Document) AppendToBlock(b BlockID, content []Run) {
	p := d.EndOf(b)
	pred := d.slots[b].prev
	d.insertRunsAt(p, content)
	d.commit(pred)
}

// RemoveBetween deletes all content between start and end. When the two
// positions lie in different blocks, the start block keeps its prefix, the
// end block keeps its suffix, every block strictly between is removed, and
// the two survivors are merged. The returned position marks the deletion
// seam, following the MergeBlocks convention. Argument order is
// indifferent; deleting an empty range is a no-op that still counts as a
// mutation.
func (d *Document) RemoveBetween(start, end Position) Position {
	start, end = d.mustPosition(start), d.mustPosition(end)
	if d.Compare(start, end) > 0 {
		start, end = end, start
	}
	pred := d.slots[start.Block].prev

	if start.Block == end.Block {
		b := start.Block
		so, eo := d.OffsetOf(start), d.OffsetOf(end)
		if so != eo {
			blk := d.blk(b)
			style := blk.runs[0].Style
			blk.runs = ensureRuns(deleteRuns(blk.runs, so, eo), style)
			d.bumpGen(b)
		}
		d.commit(pred)
		return d.PositionAt(b, so)
	}

	sb, eb := start.Block, end.Block

	// Trim the suffix of the start block.
	sblk := d.blk(sb)
	sstyle := sblk.runs[0].Style
	left, _ := splitRuns(sblk.runs, d.OffsetOf(start))
	sblk.runs = ensureRuns(left, sstyle)
	d.bumpGen(sb)

	// Drop every block strictly between.
	for b := d.slots[sb].next; b != eb; {
		next := d.slots[b].next
		d.unlink(b)
		b = next
	}

	// Trim the prefix of the end block.
	eblk := d.blk(eb)
	estyle := eblk.runs[0].Style
	_, right := splitRuns(eblk.runs, d.OffsetOf(end))
	eblk.runs = ensureRuns(right, estyle)
	d.bumpGen(eb)

	res := d.mergeBlocks(sb, eb)
	d.commit(pred)
	return res
}
