package viewer

import (
	"fmt"

	"github.com/example/alignview/internal/geometry"
)

// Kind is the kind of a pointer event.
type Kind int

const (
	Press Kind = iota
	Release
	Move
	DoubleClick
)

func (k Kind) String() string {
	switch k {
	case Press:
		return "press"
	case Release:
		return "release"
	case Move:
		return "move"
	case DoubleClick:
		return "double-click"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Button identifies the pointer button of an event.
type Button int

const (
	ButtonNone Button = iota
	Primary
	Secondary
)

// PointerEvent is a mouse event with its position in canvas space.
type PointerEvent struct {
	Kind   Kind
	Button Button
	Pos    geometry.Point
}

// trigger is the state-independent meaning of a pointer event.
type trigger int

const (
	trigIgnored trigger = iota
	trigPrimaryClick
	trigSecondaryClick
	trigDoubleClick
	trigMove
	trigReleaseLine
	trigReleasePoint
)

func (t trigger) String() string {
	switch t {
	case trigPrimaryClick:
		return "primary-click"
	case trigSecondaryClick:
		return "secondary-click"
	case trigDoubleClick:
		return "double-click"
	case trigMove:
		return "move"
	case trigReleaseLine:
		return "release-line"
	case trigReleasePoint:
		return "release-point"
	}
	return "ignored"
}
