package app

import (
	"math"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/alignview/internal/geometry"
	"github.com/example/alignview/internal/viewer"
)

const (
	doubleClickWindow = 400 * time.Millisecond
	doubleClickSlop   = 4.0
)

// pointer turns shiny mouse events into viewer pointer events. A second left
// press close to the first in time and space is delivered as a press followed
// by a double click, so the press still reaches the state machine.
type pointer struct {
	lastPress time.Time
	lastPos   geometry.Point
}

func (p *pointer) translate(e mouse.Event, now time.Time) []viewer.PointerEvent {
	pos := geometry.Pt(float64(e.X), float64(e.Y))
	switch e.Direction {
	case mouse.DirNone:
		return []viewer.PointerEvent{{Kind: viewer.Move, Pos: pos}}
	case mouse.DirPress:
		switch e.Button {
		case mouse.ButtonLeft:
			evs := []viewer.PointerEvent{{Kind: viewer.Press, Button: viewer.Primary, Pos: pos}}
			if !p.lastPress.IsZero() && now.Sub(p.lastPress) <= doubleClickWindow &&
				math.Abs(pos.X-p.lastPos.X) <= doubleClickSlop && math.Abs(pos.Y-p.lastPos.Y) <= doubleClickSlop {
				p.lastPress = time.Time{}
				return append(evs, viewer.PointerEvent{Kind: viewer.DoubleClick, Button: viewer.Primary, Pos: pos})
			}
			p.lastPress, p.lastPos = now, pos
			return evs
		case mouse.ButtonRight:
			return []viewer.PointerEvent{{Kind: viewer.Press, Button: viewer.Secondary, Pos: pos}}
		}
	case mouse.DirRelease:
		if e.Button == mouse.ButtonLeft {
			return []viewer.PointerEvent{{Kind: viewer.Release, Button: viewer.Primary, Pos: pos}}
		}
	}
	return nil
}

// action names a keyboard command.
type action string

const (
	actionCopy           action = "copy"
	actionPaste          action = "paste"
	actionReset          action = "reset"
	actionReloadSettings action = "reload-settings"
	actionQuit           action = "quit"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

var shortcuts = map[KeyShortcut]action{
	{Rune: 'c', Modifiers: key.ModControl}: actionCopy,
	{Rune: 'v', Modifiers: key.ModControl}: actionPaste,
	{Rune: 'r'}:                            actionReset,
	{Rune: 'o', Modifiers: key.ModControl}: actionReloadSettings,
	{Rune: -1, Code: key.CodeEscape}:       actionQuit,
}

// lookup finds the action bound to a key press. Printable keys match on
// their rune and Shift is ignored, so R and r both reset.
func lookup(e key.Event) (action, bool) {
	if e.Direction != key.DirPress {
		return "", false
	}
	ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers &^ key.ModShift}
	// some drivers report Ctrl+letter as the ASCII control character
	if ks.Modifiers&key.ModControl != 0 && ks.Rune >= 1 && ks.Rune <= 26 {
		ks.Rune += 'a' - 1
	}
	if ks.Rune <= 0 || unicode.IsControl(ks.Rune) {
		ks.Rune = -1
	} else {
		ks.Code = 0
	}
	a, ok := shortcuts[ks]
	return a, ok
}
