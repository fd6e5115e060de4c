package geom

import (
	"github.com/dshills/richdoc/internal/engine/cache"
	"github.com/dshills/richdoc/internal/engine/document"
)

// Cache is a side table memoizing provider rectangles per block. Character
// rectangles are guarded by the document's snapshot token and fully cleared
// whenever the block's content generation changes, since a split or merge
// can re-home characters without perturbing unrelated cached entries.
type Cache struct {
	doc      *document.Document
	provider Provider
	blocks   map[document.BlockID]*blockRects
}

type charKey struct {
	run, off int
}

type blockRects struct {
	token  cache.Token
	gen    cache.Token
	chars  map[charKey]Rect
	bounds cache.Value[boundsEntry]
}

type boundsEntry struct {
	rect Rect
	ok   bool
}

// NewCache wraps a provider with a per-block rectangle cache for doc.
func NewCache(doc *document.Document, provider Provider) *Cache {
	return &Cache{
		doc:      doc,
		provider: provider,
		blocks:   make(map[document.BlockID]*blockRects),
	}
}

// RectOf returns the rectangle of p, computing through the provider on a
// cache miss.
func (c *Cache) RectOf(p document.Position) (Rect, bool) {
	if !c.doc.ValidPosition(p) {
		return Rect{}, false
	}
	br := c.entry(p.Block)
	key := charKey{p.Run, p.Off}
	if r, ok := br.chars[key]; ok {
		return r, true
	}
	r, ok := c.provider.RectOf(p)
	if !ok {
		return Rect{}, false
	}
	br.chars[key] = r
	return r, true
}

// BlockBounds returns a rectangle covering the block's vertical extent,
// derived from the rectangles of its first and last positions. A provider
// failure is never cached: the next call computes afresh.
func (c *Cache) BlockBounds(b document.BlockID) (Rect, bool) {
	if !c.doc.IsLive(b) {
		return Rect{}, false
	}
	br := c.entry(b)
	be := br.bounds.Get(c.doc.Token(), func() boundsEntry {
		first, ok1 := c.RectOf(c.doc.StartOf(b))
		last, ok2 := c.RectOf(c.doc.EndOf(b))
		if !ok1 || !ok2 {
			return boundsEntry{}
		}
		return boundsEntry{rect: union(first, last), ok: true}
	})
	if !be.ok {
		br.bounds.Invalidate()
	}
	return be.rect, be.ok
}

// entry returns the block's cache slot, resetting it when the document
// token or the block's content generation moved on.
func (c *Cache) entry(b document.BlockID) *blockRects {
	current := c.doc.Token()
	gen := c.doc.BlockGen(b)
	br := c.blocks[b]
	if br == nil {
		br = &blockRects{}
		c.blocks[b] = br
	}
	if br.token != current || br.gen != gen {
		br.token = current
		br.gen = gen
		br.chars = make(map[charKey]Rect)
		br.bounds.Invalidate()
	}
	return br
}

// Sweep drops cache slots of blocks that no longer exist. Callers run it
// occasionally after removals; staleness is already handled by the token
// guard, so this is purely a memory concern.
func (c *Cache) Sweep() {
	for b := range c.blocks {
		if !c.doc.IsLive(b) {
			delete(c.blocks, b)
		}
	}
}

func union(a, b Rect) Rect {
	left, top := min(a.Left, b.Left), min(a.Top, b.Top)
	right, bottom := max(a.Right(), b.Right()), max(a.Bottom(), b.Bottom())
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}
