package cursor

// WordRight moves c to the next word boundary within its block. At the
// block end it jumps to the start of the following block instead; there is
// no mid-word detection across blocks. Within the block the scan first
// skips any run of ignorable characters, then keeps going while the
// category stays unchanged, stopping at the first category change or the
// block edge.
func (n *Navigator) WordRight(c *Cursor) bool {
	d := n.doc
	if d.AtBlockEnd(c.Pos) {
		next, ok := d.NextBlock(c.Pos.Block)
		if !ok {
			return false
		}
		c.Pos = d.StartOf(next)
		return true
	}

	for {
		r, ok := d.RuneAfter(c.Pos)
		if !ok {
			return true
		}
		if !n.classes.Categorize(r).Ignorable() {
			break
		}
		n.ForwardInBlock(c)
	}

	r, ok := d.RuneAfter(c.Pos)
	if !ok {
		return true
	}
	cat := n.classes.Categorize(r)
	for {
		n.ForwardInBlock(c)
		r, ok := d.RuneAfter(c.Pos)
		if !ok || n.classes.Categorize(r) != cat {
			return true
		}
	}
}

// WordLeft mirrors WordRight: at the block start it jumps to the end of
// the preceding block, otherwise it scans backward over ignorables and
// then over one unbroken category run.
func (n *Navigator) WordLeft(c *Cursor) bool {
	d := n.doc
	if d.AtBlockStart(c.Pos) {
		prev, ok := d.PrevBlock(c.Pos.Block)
		if !ok {
			return false
		}
		c.Pos = d.EndOf(prev)
		return true
	}

	for {
		r, ok := d.RuneBefore(c.Pos)
		if !ok {
			return true
		}
		if !n.classes.Categorize(r).Ignorable() {
			break
		}
		n.BackwardInBlock(c)
	}

	r, ok := d.RuneBefore(c.Pos)
	if !ok {
		return true
	}
	cat := n.classes.Categorize(r)
	for {
		n.BackwardInBlock(c)
		r, ok := d.RuneBefore(c.Pos)
		if !ok || n.classes.Categorize(r) != cat {
			return true
		}
	}
}
