package cursor

import "math"

// Towards moves c horizontally to the position on its current visual line
// whose left edge is closest to x. The walk direction is chosen by
// comparing the current left edge to x, and the walk stops as soon as a
// candidate leaves the line. Ties favor the earliest candidate; c does not
// move at all when no candidate beats the starting position strictly.
func (n *Navigator) Towards(c *Cursor, x float64) bool {
	r0, ok := n.rects.RectOf(c.Pos)
	if !ok {
		return false
	}
	best := c.Pos
	bestDist := math.Abs(r0.Left - x)
	moved := false
	backward := r0.Left > x

	probe := *c
	for {
		var stepped bool
		if backward {
			stepped = n.Backward(&probe)
		} else {
			stepped = n.Forward(&probe)
		}
		if !stepped {
			break
		}
		r, ok := n.rects.RectOf(probe.Pos)
		if !ok || !r.InlineWith(r0, n.tol) {
			break
		}
		if dist := math.Abs(r.Left - x); dist < bestDist {
			best = probe.Pos
			bestDist = dist
			moved = true
		}
	}

	c.Pos = best
	return moved
}

// TowardsPoint moves c toward the target point: it first skips whole
// blocks whose bounds end above y, then scans forward character by
// character while the cursor rectangle still lies strictly above y, and
// finally runs the horizontal search on the line it reached.
func (n *Navigator) TowardsPoint(c *Cursor, x, y float64) bool {
	start := c.Pos

	for {
		bounds, ok := n.rects.BlockBounds(c.Pos.Block)
		if !ok || bounds.Bottom() >= y {
			break
		}
		next, ok := n.doc.NextBlock(c.Pos.Block)
		if !ok {
			break
		}
		c.Pos = n.doc.StartOf(next)
	}

	for {
		r, ok := n.rects.RectOf(c.Pos)
		if !ok || r.Bottom() >= y {
			break
		}
		if !n.Forward(c) {
			break
		}
	}

	n.Towards(c, x)
	return c.Pos != start
}

// ToLineStart walks c backward to the first position of its visual line.
// Reports whether any net movement occurred; a single-position line is
// reported as no movement.
func (n *Navigator) ToLineStart(c *Cursor) bool {
	return n.lineEdge(c, n.Backward, n.Forward)
}

// ToLineEnd walks c forward to the last position of its visual line.
func (n *Navigator) ToLineEnd(c *Cursor) bool {
	return n.lineEdge(c, n.Forward, n.Backward)
}

// lineEdge walks in the step direction while the rectangle stays inline
// with the starting one. A first step that already leaves the line is
// undone; otherwise the one-step overshoot onto the neighboring line is
// corrected with a single step back.
func (n *Navigator) lineEdge(c *Cursor, step, undo func(*Cursor) bool) bool {
	r0, ok := n.rects.RectOf(c.Pos)
	if !ok {
		return false
	}
	probe := *c
	steps := 0
	for step(&probe) {
		steps++
		r, ok := n.rects.RectOf(probe.Pos)
		if !ok || !r.InlineWith(r0, n.tol) {
			if steps == 1 {
				return false
			}
			undo(&probe)
			c.Pos = probe.Pos
			return true
		}
	}
	// Ran into the document boundary while still inline.
	c.Pos = probe.Pos
	return steps > 0
}

// ToNextLineStart moves c to the first position of the following visual
// line, crossing block boundaries. c is untouched when there is no next
// line.
func (n *Navigator) ToNextLineStart(c *Cursor) bool {
	probe := *c
	n.ToLineEnd(&probe)
	if !n.Forward(&probe) {
		return false
	}
	c.Pos = probe.Pos
	return true
}

// ToPrevLineEnd moves c to the last position of the preceding visual line.
func (n *Navigator) ToPrevLineEnd(c *Cursor) bool {
	probe := *c
	n.ToLineStart(&probe)
	if !n.Backward(&probe) {
		return false
	}
	c.Pos = probe.Pos
	return true
}

// Down moves c to the following visual line and re-targets horizontally
// per state. c does not move when it is already on the last line.
func (n *Navigator) Down(c *Cursor, state NavState) bool {
	probe := *c
	if !n.ToNextLineStart(&probe) {
		return false
	}
	n.retarget(&probe, state)
	c.Pos = probe.Pos
	return true
}

// Up moves c to the preceding visual line and re-targets horizontally per
// state. c does not move when it is already on the first line.
func (n *Navigator) Up(c *Cursor, state NavState) bool {
	probe := *c
	if !n.ToPrevLineEnd(&probe) {
		return false
	}
	n.retarget(&probe, state)
	c.Pos = probe.Pos
	return true
}

func (n *Navigator) retarget(c *Cursor, state NavState) {
	switch state.Intent {
	case IntentColumn:
		n.Towards(c, state.X)
	case IntentLineStart:
		n.ToLineStart(c)
	case IntentLineEnd:
		n.ToLineEnd(c)
	}
}
