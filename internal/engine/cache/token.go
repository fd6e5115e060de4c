package cache

// Token is a document generation value. The zero Token is never issued by a
// Counter, so a zero-stamped cache entry is always stale.
type Token uint64

// Next returns the token following t, skipping zero on wraparound.
func Next(t Token) Token {
	t++
	if t == 0 {
		t = 1
	}
	return t
}

// Counter issues monotonically increasing tokens for one document.
// It starts at 1 and is bumped exactly once per structural mutation.
type Counter struct {
	current Token
}

// NewCounter returns a counter at its initial token.
func NewCounter() *Counter {
	return &Counter{current: 1}
}

// Current returns the token of the most recent mutation.
func (c *Counter) Current() Token {
	return c.current
}

// Bump advances the counter and returns the new token.
func (c *Counter) Bump() Token {
	c.current = Next(c.current)
	return c.current
}
