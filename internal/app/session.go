package app

import (
	"fmt"
	"os"

	"github.com/dshills/richdoc/internal/config"
	"github.com/dshills/richdoc/internal/engine/cursor"
	"github.com/dshills/richdoc/internal/engine/document"
	"github.com/dshills/richdoc/internal/render/grid"
)

// Session holds the editing state of one open file: the document, the
// layout used as geometry provider, the navigator, the cursor, an optional
// selection anchor, and the sticky-column state of an ongoing vertical
// gesture. It is free of terminal concerns so edit behavior can be tested
// headless.
type Session struct {
	log *Logger
	cfg config.EditorConfig

	path     string
	doc      *document.Document
	layout   *grid.Layout
	nav      *cursor.Navigator
	cur      cursor.Cursor
	anchor   *document.Position
	vertical *cursor.NavState
	modified bool
}

// NewSession creates a session over initial text. wrap is the effective
// wrap width in columns; zero disables wrapping.
func NewSession(log *Logger, cfg config.EditorConfig, path, text string, wrap int) *Session {
	s := &Session{log: log, cfg: cfg, path: path}
	s.load(text, wrap)
	return s
}

// load (re)builds the engine stack around new text.
func (s *Session) load(text string, wrap int) {
	s.doc = document.New(text)
	s.layout = grid.New(s.doc, grid.WithWrapWidth(wrap))
	s.nav = cursor.New(s.doc, s.layout,
		cursor.WithInlineTolerance(s.cfg.InlineTolerance))
	s.cur = s.nav.DocumentStart()
	s.anchor = nil
	s.vertical = nil
	s.modified = false
	s.log.Debugf("loaded %s: %d blocks (doc %s)", s.path, s.doc.BlockCount(), s.doc.ID)
}

// Document returns the session's document.
func (s *Session) Document() *document.Document { return s.doc }

// Layout returns the session's grid layout.
func (s *Session) Layout() *grid.Layout { return s.layout }

// Navigator returns the session's navigator.
func (s *Session) Navigator() *cursor.Navigator { return s.nav }

// Cursor returns the current cursor.
func (s *Session) Cursor() cursor.Cursor { return s.cur }

// Modified reports whether the buffer has unsaved edits.
func (s *Session) Modified() bool { return s.modified }

// Path returns the file backing the session.
func (s *Session) Path() string { return s.path }

// Selection returns the selection bounds in document order, reporting
// false when nothing is selected.
func (s *Session) Selection() (lo, hi document.Position, ok bool) {
	if s.anchor == nil || *s.anchor == s.cur.Pos {
		return lo, hi, false
	}
	lo, hi = *s.anchor, s.cur.Pos
	if s.doc.Compare(lo, hi) > 0 {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// ClearSelection drops the selection anchor without moving the cursor.
func (s *Session) ClearSelection() {
	s.anchor = nil
}

// horizontalGesture resets vertical stickiness and manages the selection
// anchor around any non-vertical movement or edit.
func (s *Session) horizontalGesture(extend bool) {
	s.vertical = nil
	s.updateAnchor(extend)
}

func (s *Session) updateAnchor(extend bool) {
	if !extend {
		s.anchor = nil
		return
	}
	if s.anchor == nil {
		p := s.cur.Pos
		s.anchor = &p
	}
}

// Insert inserts text at the cursor, replacing the selection if there is
// one. Line breaks in text split blocks.
func (s *Session) Insert(text string) {
	if lo, hi, ok := s.Selection(); ok {
		s.cur.Pos = s.doc.RemoveBetween(lo, hi)
	}
	s.horizontalGesture(false)
	s.cur.Pos = s.doc.InsertText(s.cur.Pos, text)
	s.afterEdit()
}

// InsertRuns inserts styled content at the cursor.
func (s *Session) InsertRuns(content []document.Run) {
	if lo, hi, ok := s.Selection(); ok {
		s.cur.Pos = s.doc.RemoveBetween(lo, hi)
	}
	s.horizontalGesture(false)
	s.cur.Pos = s.doc.InsertRuns(s.cur.Pos, content)
	s.afterEdit()
}

// DeleteBackward deletes the selection, or the character before the
// cursor, merging blocks across a block boundary. Reports whether
// anything was deleted.
func (s *Session) DeleteBackward() bool {
	if lo, hi, ok := s.Selection(); ok {
		s.cur.Pos = s.doc.RemoveBetween(lo, hi)
		s.horizontalGesture(false)
		s.afterEdit()
		return true
	}
	s.horizontalGesture(false)
	prev := s.cur
	if !s.nav.Backward(&prev) {
		return false
	}
	s.cur.Pos = s.doc.RemoveBetween(prev.Pos, s.cur.Pos)
	s.afterEdit()
	return true
}

// DeleteForward deletes the selection, or the character after the cursor.
func (s *Session) DeleteForward() bool {
	if lo, hi, ok := s.Selection(); ok {
		s.cur.Pos = s.doc.RemoveBetween(lo, hi)
		s.horizontalGesture(false)
		s.afterEdit()
		return true
	}
	s.horizontalGesture(false)
	next := s.cur
	if !s.nav.Forward(&next) {
		return false
	}
	s.cur.Pos = s.doc.RemoveBetween(s.cur.Pos, next.Pos)
	s.afterEdit()
	return true
}

func (s *Session) afterEdit() {
	s.modified = true
	s.nav.Sweep()
	s.layout.Sweep()
}

// Movement. extend keeps or starts a selection anchored at the position
// before the first extending move.

// MoveLeft steps one position backward.
func (s *Session) MoveLeft(extend bool) bool {
	s.horizontalGesture(extend)
	return s.nav.Backward(&s.cur)
}

// MoveRight steps one position forward.
func (s *Session) MoveRight(extend bool) bool {
	s.horizontalGesture(extend)
	return s.nav.Forward(&s.cur)
}

// WordLeft jumps to the previous word boundary.
func (s *Session) WordLeft(extend bool) bool {
	s.horizontalGesture(extend)
	return s.nav.WordLeft(&s.cur)
}

// WordRight jumps to the next word boundary.
func (s *Session) WordRight(extend bool) bool {
	s.horizontalGesture(extend)
	return s.nav.WordRight(&s.cur)
}

// LineStart snaps to the beginning of the visual line and arms line-start
// intent for subsequent vertical movement.
func (s *Session) LineStart(extend bool) bool {
	s.updateAnchor(extend)
	moved := s.nav.ToLineStart(&s.cur)
	st := cursor.LineStartTarget()
	s.vertical = &st
	return moved
}

// LineEnd snaps to the end of the visual line and arms line-end intent.
func (s *Session) LineEnd(extend bool) bool {
	s.updateAnchor(extend)
	moved := s.nav.ToLineEnd(&s.cur)
	st := cursor.LineEndTarget()
	s.vertical = &st
	return moved
}

// MoveUp moves one visual line up, keeping the sticky column of the
// ongoing vertical gesture.
func (s *Session) MoveUp(extend bool) bool {
	s.updateAnchor(extend)
	return s.nav.Up(&s.cur, s.verticalState())
}

// MoveDown moves one visual line down.
func (s *Session) MoveDown(extend bool) bool {
	s.updateAnchor(extend)
	return s.nav.Down(&s.cur, s.verticalState())
}

// verticalState returns the gesture's NavState, starting a new gesture at
// the cursor's current column when none is active.
func (s *Session) verticalState() cursor.NavState {
	if s.vertical != nil {
		return *s.vertical
	}
	x := 0.0
	if r, ok := s.nav.CursorRect(s.cur); ok {
		x = r.Left
	}
	st := cursor.ColumnTarget(x)
	s.vertical = &st
	return st
}

// ClickAt moves the cursor toward a point in layout coordinates.
func (s *Session) ClickAt(x, y float64, extend bool) {
	s.horizontalGesture(extend)
	s.cur = s.nav.DocumentStart()
	s.nav.TowardsPoint(&s.cur, x, y)
}

// SetWrapWidth rebuilds the layout at a new wrap width, keeping the
// document, cursor and selection. Zero disables wrapping.
func (s *Session) SetWrapWidth(wrap int) {
	s.layout = grid.New(s.doc, grid.WithWrapWidth(wrap))
	s.nav = cursor.New(s.doc, s.layout,
		cursor.WithInlineTolerance(s.cfg.InlineTolerance))
	s.vertical = nil
}

// Save writes the document back to its file as plain text.
func (s *Session) Save() error {
	if s.path == "" {
		return fmt.Errorf("no file name")
	}
	if err := os.WriteFile(s.path, []byte(s.doc.Text()+"\n"), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", s.path, err)
	}
	s.modified = false
	s.log.Infof("saved %s", s.path)
	return nil
}

// Reload replaces the buffer with new text, dropping all edit state.
func (s *Session) Reload(text string, wrap int) {
	s.load(text, wrap)
	s.log.Infof("reloaded %s from disk", s.path)
}

// Macro-facing surface (plugin.Editor).

// Move moves the cursor one step in a named direction for macros.
func (s *Session) Move(direction string) bool {
	switch direction {
	case "left":
		return s.MoveLeft(false)
	case "right":
		return s.MoveRight(false)
	case "up":
		return s.MoveUp(false)
	case "down":
		return s.MoveDown(false)
	case "word-left":
		return s.WordLeft(false)
	case "word-right":
		return s.WordRight(false)
	case "line-start":
		return s.LineStart(false)
	case "line-end":
		return s.LineEnd(false)
	default:
		return false
	}
}

// Line returns the text of the cursor's block.
func (s *Session) Line() string {
	return s.doc.BlockText(s.cur.Pos.Block)
}

// Text returns the whole document as plain text.
func (s *Session) Text() string {
	return s.doc.Text()
}
