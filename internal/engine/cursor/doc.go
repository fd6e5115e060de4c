// Package cursor provides the movement algebra over document positions.
//
// A Cursor is a free-standing value: it can be copied, stashed and mutated
// independently, and holds a block handle rather than a pointer, so a
// cursor whose block was removed is detectable rather than undefined.
//
// All movement goes through a Navigator, which bundles the document, the
// geometry provider (behind a token-guarded rectangle cache) and the
// character classifier. Movement methods mutate the cursor in place and
// report whether any net movement occurred; returning false at a boundary
// is the normal way to discover the document edge, not an error.
//
// Horizontal and vertical movement are geometry driven: "same line" is the
// vertical-overlap predicate of [geom.Rect.InlineWith], and "same column"
// across lines is re-targeting against a remembered x coordinate carried in
// a NavState between vertical steps.
package cursor
