package app

import (
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/alignview/internal/viewer"
)

func kinds(evs []viewer.PointerEvent) []viewer.Kind {
	out := make([]viewer.Kind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}

func TestPointerTranslate(t *testing.T) {
	var p pointer
	t0 := time.Unix(100, 0)

	evs := p.translate(mouse.Event{X: 10, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, t0)
	if len(evs) != 1 || evs[0].Kind != viewer.Press || evs[0].Button != viewer.Primary {
		t.Fatalf("first press = %+v", evs)
	}
	evs = p.translate(mouse.Event{X: 12, Y: 11, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}, t0.Add(50*time.Millisecond))
	if len(evs) != 1 || evs[0].Kind != viewer.Release {
		t.Fatalf("release = %+v", evs)
	}
	evs = p.translate(mouse.Event{X: 12, Y: 12, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, t0.Add(200*time.Millisecond))
	if got := kinds(evs); len(got) != 2 || got[0] != viewer.Press || got[1] != viewer.DoubleClick {
		t.Fatalf("second press within window = %v, want press then double click", got)
	}
	evs = p.translate(mouse.Event{X: 12, Y: 12, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, t0.Add(300*time.Millisecond))
	if got := kinds(evs); len(got) != 1 || got[0] != viewer.Press {
		t.Fatalf("third press should start over, got %v", got)
	}
}

func TestPointerDoubleClickLimits(t *testing.T) {
	var p pointer
	t0 := time.Unix(100, 0)
	p.translate(mouse.Event{X: 10, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, t0)
	if got := kinds(p.translate(mouse.Event{X: 10, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, t0.Add(time.Second))); len(got) != 1 {
		t.Fatalf("slow second press = %v", got)
	}
	if got := kinds(p.translate(mouse.Event{X: 30, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, t0.Add(1100*time.Millisecond))); len(got) != 1 {
		t.Fatalf("distant second press = %v", got)
	}
}

func TestPointerOtherEvents(t *testing.T) {
	var p pointer
	now := time.Unix(0, 0)
	if evs := p.translate(mouse.Event{X: 5, Y: 6}, now); len(evs) != 1 || evs[0].Kind != viewer.Move || evs[0].Pos.X != 5 {
		t.Fatalf("move = %+v", evs)
	}
	if evs := p.translate(mouse.Event{Button: mouse.ButtonRight, Direction: mouse.DirPress}, now); len(evs) != 1 || evs[0].Button != viewer.Secondary {
		t.Fatalf("right press = %+v", evs)
	}
	if evs := p.translate(mouse.Event{Button: mouse.ButtonRight, Direction: mouse.DirRelease}, now); len(evs) != 0 {
		t.Fatalf("right release should be dropped")
	}
	if evs := p.translate(mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}, now); len(evs) != 0 {
		t.Fatalf("wheel should be dropped")
	}
}

func TestLookupShortcuts(t *testing.T) {
	cases := []struct {
		ev   key.Event
		want action
		ok   bool
	}{
		{key.Event{Rune: 'c', Code: key.CodeC, Modifiers: key.ModControl, Direction: key.DirPress}, actionCopy, true},
		{key.Event{Rune: 0x03, Code: key.CodeC, Modifiers: key.ModControl, Direction: key.DirPress}, actionCopy, true},
		{key.Event{Rune: 'V', Code: key.CodeV, Modifiers: key.ModControl | key.ModShift, Direction: key.DirPress}, actionPaste, true},
		{key.Event{Rune: 'R', Code: key.CodeR, Modifiers: key.ModShift, Direction: key.DirPress}, actionReset, true},
		{key.Event{Rune: 'o', Code: key.CodeO, Modifiers: key.ModControl, Direction: key.DirPress}, actionReloadSettings, true},
		{key.Event{Rune: -1, Code: key.CodeEscape, Direction: key.DirPress}, actionQuit, true},
		{key.Event{Rune: 0x1b, Code: key.CodeEscape, Direction: key.DirPress}, actionQuit, true},
		{key.Event{Rune: 'r', Code: key.CodeR, Direction: key.DirRelease}, "", false},
		{key.Event{Rune: 'c', Code: key.CodeC, Direction: key.DirPress}, "", false},
	}
	for _, c := range cases {
		got, ok := lookup(c.ev)
		if ok != c.ok || got != c.want {
			t.Fatalf("lookup(%+v) = %q, %v; want %q, %v", c.ev, got, ok, c.want, c.ok)
		}
	}
}
