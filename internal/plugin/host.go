// Package plugin hosts user macros in an embedded Lua interpreter.
//
// Macros see a single global table, richdoc, whose functions drive the
// editor through the narrow Editor interface; the interpreter never
// touches engine types directly. One Host owns one Lua state and is not
// safe for concurrent use, matching the engine's single-threaded model.
package plugin

import (
	"errors"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// ErrClosed is returned when running a script on a closed host.
var ErrClosed = errors.New("plugin: host closed")

// Editor is the surface a macro can drive.
type Editor interface {
	// Insert inserts text at the cursor, line breaks included.
	Insert(text string)
	// Move moves the cursor one step in a named direction: "left",
	// "right", "up", "down", "word-left", "word-right", "line-start",
	// "line-end". It reports whether the cursor moved.
	Move(direction string) bool
	// Line returns the text of the cursor's block.
	Line() string
	// Text returns the whole document as plain text.
	Text() string
}

// Host runs macros against one editor.
type Host struct {
	state  *lua.LState
	editor Editor
	closed bool
}

// NewHost creates a host bound to ed. The standard Lua libraries are
// loaded; io and os access is whatever gopher-lua's defaults allow.
func NewHost(ed Editor) *Host {
	h := &Host{
		state:  lua.NewState(),
		editor: ed,
	}
	h.register()
	return h
}

// register installs the richdoc table into the Lua state.
func (h *Host) register() {
	mod := h.state.NewTable()
	h.state.SetGlobal("richdoc", mod)

	h.state.SetField(mod, "insert", h.state.NewFunction(func(L *lua.LState) int {
		h.editor.Insert(L.CheckString(1))
		return 0
	}))
	h.state.SetField(mod, "move", h.state.NewFunction(func(L *lua.LState) int {
		moved := h.editor.Move(L.CheckString(1))
		L.Push(lua.LBool(moved))
		return 1
	}))
	h.state.SetField(mod, "line", h.state.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(h.editor.Line()))
		return 1
	}))
	h.state.SetField(mod, "text", h.state.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(h.editor.Text()))
		return 1
	}))
}

// Run executes a macro script.
func (h *Host) Run(script string) error {
	if h.closed {
		return ErrClosed
	}
	if err := h.state.DoString(script); err != nil {
		return fmt.Errorf("plugin: %w", err)
	}
	return nil
}

// RunFile executes a macro file. A nonexistent file is not an error, so a
// configured-but-absent init script stays silent.
func (h *Host) RunFile(path string) error {
	if h.closed {
		return ErrClosed
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := h.state.DoFile(path); err != nil {
		return fmt.Errorf("plugin: %s: %w", path, err)
	}
	return nil
}

// Close releases the Lua state.
func (h *Host) Close() {
	if !h.closed {
		h.state.Close()
		h.closed = true
	}
}
