package app

import (
	"github.com/gdamore/tcell/v2"
)

// action is what the event loop should do after an event is handled.
type action int

const (
	actionNone action = iota
	actionRedraw
	actionQuit
)

// handleKey maps a key event onto session operations.
func (a *App) handleKey(ev *tcell.EventKey) action {
	shift := ev.Modifiers()&tcell.ModShift != 0
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	alt := ev.Modifiers()&tcell.ModAlt != 0

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return actionQuit

	case tcell.KeyEscape:
		a.session.ClearSelection()
		return actionRedraw

	case tcell.KeyCtrlS:
		if err := a.session.Save(); err != nil {
			a.log.Errorf("save failed: %v", err)
		}
		return actionRedraw

	case tcell.KeyLeft:
		if ctrl || alt {
			a.session.WordLeft(shift)
		} else {
			a.session.MoveLeft(shift)
		}
		return actionRedraw
	case tcell.KeyRight:
		if ctrl || alt {
			a.session.WordRight(shift)
		} else {
			a.session.MoveRight(shift)
		}
		return actionRedraw
	case tcell.KeyUp:
		a.session.MoveUp(shift)
		return actionRedraw
	case tcell.KeyDown:
		a.session.MoveDown(shift)
		return actionRedraw
	case tcell.KeyHome:
		a.session.LineStart(shift)
		return actionRedraw
	case tcell.KeyEnd:
		a.session.LineEnd(shift)
		return actionRedraw

	case tcell.KeyEnter:
		a.session.Insert("\n")
		return actionRedraw
	case tcell.KeyTab:
		a.session.Insert("\t")
		return actionRedraw
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.session.DeleteBackward()
		return actionRedraw
	case tcell.KeyDelete:
		a.session.DeleteForward()
		return actionRedraw

	case tcell.KeyRune:
		a.session.Insert(string(ev.Rune()))
		return actionRedraw
	}
	return actionNone
}

// handleMouse maps a mouse event onto session operations. The status line
// and scroll offset live in the renderer, so clicks are translated here.
func (a *App) handleMouse(ev *tcell.EventMouse) action {
	if ev.Buttons()&tcell.Button1 == 0 {
		return actionNone
	}
	x, y := ev.Position()
	_, height := a.screen.Size()
	if y >= height-1 {
		return actionNone
	}
	shift := ev.Modifiers()&tcell.ModShift != 0
	a.session.ClickAt(float64(x), float64(y+a.render.scroll), shift)
	return actionRedraw
}
