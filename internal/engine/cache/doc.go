// Package cache provides the generation-counter invalidation scheme used by
// the document engine.
//
// The scheme has three pieces:
//
//   - Token/Counter: a per-document monotonically increasing generation
//     counter, bumped exactly once per structural mutation.
//   - Value: a lazily computed value stamped with the token it was computed
//     under. A lookup under a newer token recomputes transparently.
//   - Index: an incremental ordinal index over an externally owned linked
//     sequence. Lookups resume from the last known-good point instead of
//     rescanning from the head, and a mutation rewinds the resume point to
//     just before the perturbed element.
//
// Nothing in this package knows about documents or blocks; the document
// model owns a Counter and threads the current token through lookups.
package cache
