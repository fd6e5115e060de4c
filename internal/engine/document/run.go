package document

// Run is a maximal contiguous span of characters sharing one style.
type Run struct {
	Style Style
	Text  []rune
}

// Len returns the number of characters in the run.
func (r Run) Len() int {
	return len(r.Text)
}

// clone returns a run with its own backing array.
func (r Run) clone() Run {
	text := make([]rune, len(r.Text))
	copy(text, r.Text)
	return Run{Style: r.Style, Text: text}
}

// runsLen returns the total character count of a run sequence.
func runsLen(runs []Run) int {
	n := 0
	for _, r := range runs {
		n += len(r.Text)
	}
	return n
}

// runsText flattens a run sequence into a string.
func runsText(runs []Run) string {
	rs := make([]rune, 0, runsLen(runs))
	for _, r := range runs {
		rs = append(rs, r.Text...)
	}
	return string(rs)
}

// cloneRuns deep-copies a run sequence.
func cloneRuns(runs []Run) []Run {
	out := make([]Run, len(runs))
	for i, r := range runs {
		out[i] = r.clone()
	}
	return out
}

// normalizeRuns drops zero-length runs and coalesces adjacent runs that
// share a style. The result may be empty; callers that need the at-least-
// one-run block invariant use ensureRuns.
func normalizeRuns(runs []Run) []Run {
	out := runs[:0]
	for _, r := range runs {
		if len(r.Text) == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == r.Style {
			out[n-1].Text = append(out[n-1].Text, r.Text...)
			continue
		}
		out = append(out, r)
	}
	return out
}

// ensureRuns normalizes runs and guarantees at least one run, using
// fallback as the style of the surviving empty run.
func ensureRuns(runs []Run, fallback Style) []Run {
	out := normalizeRuns(runs)
	if len(out) == 0 {
		return []Run{{Style: fallback}}
	}
	return out
}

// splitRuns divides a run sequence at a character offset, dividing the run
// under the offset in two if it falls mid-run. Both halves share no backing
// arrays with each other; zero-length halves come back empty, not nil-run.
func splitRuns(runs []Run, off int) (left, right []Run) {
	for i, r := range runs {
		n := len(r.Text)
		if off > n {
			off -= n
			continue
		}
		left = cloneRuns(runs[:i])
		if off > 0 {
			left = append(left, Run{Style: r.Style, Text: append([]rune(nil), r.Text[:off]...)})
		}
		if off < n {
			right = append(right, Run{Style: r.Style, Text: append([]rune(nil), r.Text[off:]...)})
		}
		right = append(right, cloneRuns(runs[i+1:])...)
		return normalizeRuns(left), normalizeRuns(right)
	}
	return cloneRuns(runs), nil
}

// concatRuns appends b to a, coalescing at the seam when the last run of a
// and the first run of b share a style.
func concatRuns(a, b []Run) []Run {
	a = normalizeRuns(a)
	b = normalizeRuns(b)
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	if a[len(a)-1].Style == b[0].Style {
		a[len(a)-1].Text = append(a[len(a)-1].Text, b[0].Text...)
		b = b[1:]
	}
	return append(a, b...)
}

// deleteRuns removes the character range [start, end) from a run sequence,
// coalescing across the seam. The result may be empty.
func deleteRuns(runs []Run, start, end int) []Run {
	left, _ := splitRuns(runs, start)
	_, right := splitRuns(runs, end)
	return concatRuns(left, right)
}
