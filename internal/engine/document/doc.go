// Package document provides the block/run document model: an ordered
// sequence of blocks (paragraphs), each holding one or more runs of
// characters that share a style.
//
// Blocks live in an arena of doubly linked slots addressed by stable
// BlockID handles, bounded by two permanent sentinel slots so that "is this
// the first/last block" is a structural query. Positions hold handles, not
// pointers, so a position whose block was removed by a later mutation is
// cheaply detectable with ValidPosition rather than being undefined.
//
// Structural invariants, maintained by every operation:
//
//   - A block always holds at least one run. An empty block is a block
//     whose sole run has zero characters; a zero-length run never appears
//     anywhere else.
//   - No two adjacent runs in a block share a style: appends and merges
//     coalesce.
//
// Every exported mutating operation bumps the document's snapshot token
// exactly once, however many internal steps it performs, and rewinds the
// incremental block-index cache to just before the earliest perturbed
// block. Invalid handles and nil arguments are programming errors and
// panic; boundary conditions are reported with booleans.
//
// Basic usage:
//
//	doc := document.New("hello\nworld")
//	first, _ := doc.FirstBlock()
//	p := doc.EndOf(first)
//	p = doc.InsertText(p, ", there")   // "hello, there"
package document
