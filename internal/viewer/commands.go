package viewer

import (
	"github.com/example/alignview/internal/geometry"
	"github.com/example/alignview/internal/settings"
	"github.com/example/alignview/internal/viewport"
)

// Clear drops the image and returns to the empty state. Any in-flight load
// is superseded.
func (v *Viewer) Clear() {
	v.supersede()
	v.cancel()
	v.cancel = nil
	v.state.Image = nil
	v.state.ClearPick()
	v.state.Status = viewport.None
	v.logger.Debug("cleared")
	v.redraw()
}

// SetStatus forces the state machine into s.
func (v *Viewer) SetStatus(s viewport.Status) {
	if s != viewport.Drawing && s != viewport.ZoomAndRotate {
		v.state.ClearPick()
	}
	v.logger.Debug("status forced", "from", v.state.Status, "to", s)
	v.state.Status = s
	v.redraw()
}

// SetTransform replaces the placement and shows it in StartScale.
func (v *Viewer) SetTransform(t viewport.TransformParams) error {
	if err := t.Validate(); err != nil {
		return err
	}
	v.state.Transform = t
	v.state.ClearPick()
	v.state.Status = viewport.StartScale
	v.redraw()
	return nil
}

// ApplyTransform replaces the placement without changing the status.
func (v *Viewer) ApplyTransform(t viewport.TransformParams) error {
	if err := t.Validate(); err != nil {
		return err
	}
	v.state.Transform = t
	v.redraw()
	return nil
}

// ResetToStartScale returns to the saved placement view.
func (v *Viewer) ResetToStartScale() {
	v.state.ClearPick()
	v.state.Status = viewport.StartScale
	v.redraw()
}

// Resize records a new surface size and redraws. Status and transform are
// left alone.
func (v *Viewer) Resize(w, h int) {
	v.canvas = geometry.Sz(float64(w), float64(h))
	v.redraw()
}

// ApplySettings adopts the placement from a settings response and enters
// StartScale. Unsuccessful or malformed responses are logged and leave the
// state untouched.
func (v *Viewer) ApplySettings(resp settings.Response) error {
	p, err := settings.Params(resp)
	if err != nil {
		v.logger.Warn("settings ignored", "err", err)
		return err
	}
	v.state.Transform.Scale = p.Scale
	v.state.Transform.OffsetX = p.OffsetX
	v.state.Transform.OffsetY = p.OffsetY
	v.state.ClearPick()
	v.state.Status = viewport.StartScale
	v.logger.Info("settings applied", "scale", p.Scale, "offset_x", p.OffsetX, "offset_y", p.OffsetY)
	v.redraw()
	return nil
}
