package viewer

import (
	"github.com/example/alignview/internal/geometry"
	"github.com/example/alignview/internal/viewport"
)

type edge struct {
	from viewport.Status
	on   trigger
}

type transition struct {
	to viewport.Status
	// effect runs before the status changes.
	effect func(v *Viewer, ev PointerEvent)
}

// transitions is the complete pointer table. A missing edge is a no-op.
var transitions = map[edge]transition{
	{viewport.StartScale, trigPrimaryClick}:   {viewport.Normal, (*Viewer).acceptPlacement},
	{viewport.StartScale, trigSecondaryClick}: {viewport.Normal, (*Viewer).acceptPlacement},
	{viewport.StartScale, trigDoubleClick}:    {viewport.Normal, (*Viewer).acceptPlacement},

	{viewport.Normal, trigPrimaryClick}: {viewport.Drawing, (*Viewer).beginPick},

	{viewport.Drawing, trigMove}:         {viewport.Drawing, (*Viewer).extendPick},
	{viewport.Drawing, trigReleaseLine}:  {viewport.ZoomAndRotate, (*Viewer).completePick},
	{viewport.Drawing, trigReleasePoint}: {viewport.Normal, (*Viewer).abortPick},

	{viewport.ZoomAndRotate, trigPrimaryClick}:   {viewport.Normal, (*Viewer).dropPivot},
	{viewport.ZoomAndRotate, trigSecondaryClick}: {viewport.Normal, (*Viewer).dropPivot},
	{viewport.ZoomAndRotate, trigDoubleClick}:    {viewport.Normal, (*Viewer).dropPivot},
}

// classify maps an event to a trigger. Releases are split by whether the
// tracked pick line has any length; the release position itself is not used.
func (v *Viewer) classify(ev PointerEvent) trigger {
	switch ev.Kind {
	case Press:
		switch ev.Button {
		case Primary:
			return trigPrimaryClick
		case Secondary:
			return trigSecondaryClick
		}
	case DoubleClick:
		return trigDoubleClick
	case Move:
		return trigMove
	case Release:
		if ev.Button != Primary {
			return trigIgnored
		}
		if v.state.Pick != nil && !v.state.Pick.Degenerate() {
			return trigReleaseLine
		}
		return trigReleasePoint
	}
	return trigIgnored
}

// HandlePointer feeds one pointer event through the transition table. It
// reports whether a transition fired.
func (v *Viewer) HandlePointer(ev PointerEvent) bool {
	on := v.classify(ev)
	tr, ok := transitions[edge{v.state.Status, on}]
	if !ok {
		return false
	}
	from := v.state.Status
	if tr.effect != nil {
		tr.effect(v, ev)
	}
	v.state.Status = tr.to
	if from != tr.to {
		v.logger.Debug("transition", "from", from, "on", on, "to", tr.to)
	}
	v.redraw()
	return true
}

func (v *Viewer) acceptPlacement(PointerEvent) {
	v.state.ClearPick()
}

func (v *Viewer) beginPick(ev PointerEvent) {
	v.state.Pick = &viewport.Pick{Start: ev.Pos, End: ev.Pos}
}

func (v *Viewer) extendPick(ev PointerEvent) {
	if v.state.Pick == nil {
		v.state.Pick = &viewport.Pick{Start: ev.Pos}
	}
	v.state.Pick.End = ev.Pos
}

func (v *Viewer) completePick(PointerEvent) {
	line := *v.state.Pick
	v.state.Transform.Angle = geometry.Angle(line.Start, line.End)

	lb := v.letterbox()
	pivot := geometry.Midpoint(lb.ToImage(line.Start), lb.ToImage(line.End))
	v.logger.Info("pick completed", "angle", v.state.Transform.Angle, "pivot_x", pivot.X, "pivot_y", pivot.Y)
	if v.onPick != nil {
		v.onPick(Pick{Angle: v.state.Transform.Angle, Pivot: pivot, Line: line})
	}
}

// abortPick handles a zero-length line. The operator gets no feedback.
func (v *Viewer) abortPick(ev PointerEvent) {
	v.logger.Debug("degenerate pick ignored", "x", ev.Pos.X, "y", ev.Pos.Y)
	v.state.ClearPick()
}

// dropPivot leaves the rotated view. The picked angle stays in the
// transform.
func (v *Viewer) dropPivot(PointerEvent) {
	v.state.ClearPick()
}
