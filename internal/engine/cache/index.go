package cache

// Index incrementally assigns ordinals to the elements of an externally
// owned linked sequence. Lookups that miss resume scanning from the last
// element indexed under the current token instead of from the head, so a
// burst of queries after a mutation costs one partial walk rather than a
// full rescan per query.
//
// The sequence itself is supplied per lookup through first/next callbacks;
// Index never holds a reference to it.
type Index[K comparable] struct {
	entries map[K]indexEntry
	resume  K
	pinned  bool
}

type indexEntry struct {
	ordinal int
	token   Token
}

// NewIndex returns an empty index.
func NewIndex[K comparable]() *Index[K] {
	return &Index[K]{entries: make(map[K]indexEntry)}
}

// Lookup returns the ordinal of target under the current token. first
// returns the head of the sequence, next the successor of an element; both
// report false when no such element exists. Lookup reports false if target
// is not reachable from the head.
//
// The resume point only shortcuts targets at or after it; a target that
// lies before it exhausts the resumed scan, and Lookup falls back to a
// scan from the head. Entries stamped along the way stay valid either way.
func (ix *Index[K]) Lookup(current Token, target K, first func() (K, bool), next func(K) (K, bool)) (int, bool) {
	if e, ok := ix.entries[target]; ok && e.token == current {
		return e.ordinal, true
	}

	if ix.pinned {
		if e, ok := ix.entries[ix.resume]; ok && e.token == current {
			if ord, found := ix.scan(current, target, ix.resume, e.ordinal, next); found {
				return ord, true
			}
		}
	}

	head, ok := first()
	if !ok {
		return 0, false
	}
	ix.entries[head] = indexEntry{ordinal: 0, token: current}
	return ix.scan(current, target, head, 0, next)
}

// scan walks forward from at, whose entry is already stamped with ord,
// stamping every element passed, until it reaches target. On success the
// resume point moves to target.
func (ix *Index[K]) scan(current Token, target K, at K, ord int, next func(K) (K, bool)) (int, bool) {
	for at != target {
		succ, ok := next(at)
		if !ok {
			return 0, false
		}
		at = succ
		ord++
		ix.entries[at] = indexEntry{ordinal: ord, token: current}
	}
	ix.resume = at
	ix.pinned = true
	return ord, true
}

// Rewind re-stamps pred as the resume point across a token bump. old is the
// token in effect before the mutation, current the token after. pred must be
// the predecessor of the earliest perturbed element: its ordinal is the last
// one the mutation left intact. When pred carries no valid entry (or ok is
// false because the mutation happened at the head), the resume point is
// dropped and the next lookup scans from the head.
func (ix *Index[K]) Rewind(pred K, ok bool, old, current Token) {
	if !ok {
		ix.pinned = false
		return
	}
	e, exists := ix.entries[pred]
	if !exists || e.token != old {
		ix.pinned = false
		return
	}
	ix.entries[pred] = indexEntry{ordinal: e.ordinal, token: current}
	ix.resume = pred
	ix.pinned = true
}

// Drop removes an element's entry entirely, for elements that no longer
// exist in the sequence.
func (ix *Index[K]) Drop(k K) {
	delete(ix.entries, k)
	if ix.pinned && ix.resume == k {
		ix.pinned = false
	}
}

// Len returns the number of stored entries, stale ones included.
func (ix *Index[K]) Len() int {
	return len(ix.entries)
}
