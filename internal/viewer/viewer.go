// Package viewer implements the transform state machine that drives the
// image viewer. A Viewer owns one viewport.State and must only be used from
// a single goroutine, normally the window event loop; background decodes
// report back through a Sender instead of touching the state.
package viewer

import (
	"context"
	"image"

	"github.com/charmbracelet/log"
	"golang.org/x/mobile/event/paint"

	"github.com/example/alignview/internal/geometry"
	"github.com/example/alignview/internal/imagefile"
	"github.com/example/alignview/internal/render"
	"github.com/example/alignview/internal/theme"
	"github.com/example/alignview/internal/viewport"
)

// Sender delivers events to the goroutine that owns the Viewer.
// screen.Window satisfies it.
type Sender interface {
	Send(event interface{})
}

// Viewer is the transform state machine.
type Viewer struct {
	state  *viewport.State
	canvas geometry.Size
	theme  *theme.Theme

	ctx    context.Context
	sender Sender
	logger *log.Logger
	decode func(ctx context.Context, path string) (image.Image, string, error)

	seq    uint64
	cancel context.CancelFunc

	onPick func(Pick)
	onLoad func(LoadResult)
}

// Pick describes a completed reference-line pick.
type Pick struct {
	Angle float64
	// Pivot is in image space.
	Pivot geometry.Point
	Line  viewport.Pick
}

// Option configures a Viewer during creation.
type Option func(*Viewer)

// WithSender sets where load results and redraw requests are sent.
func WithSender(s Sender) Option { return func(v *Viewer) { v.sender = s } }

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option { return func(v *Viewer) { v.logger = l } }

// WithTheme sets the theme used by Paint.
func WithTheme(t *theme.Theme) Option { return func(v *Viewer) { v.theme = t } }

// WithContext sets the parent context of background decodes.
func WithContext(ctx context.Context) Option { return func(v *Viewer) { v.ctx = ctx } }

// WithTransform sets the initial placement.
func WithTransform(t viewport.TransformParams) Option {
	return func(v *Viewer) {
		if t.Validate() == nil {
			v.state.Transform = t
		}
	}
}

// WithCanvas sets the initial surface size.
func WithCanvas(w, h int) Option {
	return func(v *Viewer) { v.canvas = geometry.Sz(float64(w), float64(h)) }
}

// WithPickListener registers a callback for completed picks.
func WithPickListener(fn func(Pick)) Option { return func(v *Viewer) { v.onPick = fn } }

// WithLoadListener registers a callback for every applied load result.
func WithLoadListener(fn func(LoadResult)) Option { return func(v *Viewer) { v.onLoad = fn } }

// New creates a Viewer with no image and status None.
func New(opts ...Option) *Viewer {
	v := &Viewer{
		state:  viewport.New(),
		theme:  theme.Default(),
		ctx:    context.Background(),
		logger: log.Default(),
		decode: imagefile.Decode,
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Status returns the current state machine status.
func (v *Viewer) Status() viewport.Status { return v.state.Status }

// Transform returns the current placement parameters.
func (v *Viewer) Transform() viewport.TransformParams { return v.state.Transform }

// Canvas returns the current surface size.
func (v *Viewer) Canvas() geometry.Size { return v.canvas }

// Snapshot returns a copy of the reportable state.
func (v *Viewer) Snapshot() viewport.Snapshot { return v.state.Snapshot() }

// Image returns the loaded image or nil.
func (v *Viewer) Image() image.Image {
	if !v.state.HasImage() {
		return nil
	}
	return v.state.Image.Src
}

// SetTheme replaces the paint theme and requests a redraw.
func (v *Viewer) SetTheme(t *theme.Theme) {
	if t == nil {
		return
	}
	v.theme = t
	v.redraw()
}

// Paint renders the current state into dst and records the fit ratio of
// letterboxed frames.
func (v *Viewer) Paint(dst *image.RGBA) render.Layout {
	l := render.Frame(dst, v.state, v.theme)
	if l.Mode == render.ModeLetterbox {
		v.state.FitRatio = l.Fit.Ratio
	}
	return l
}

// Render paints the current state into a new image of the canvas size.
func (v *Viewer) Render() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, int(v.canvas.W), int(v.canvas.H)))
	v.Paint(dst)
	return dst
}

func (v *Viewer) letterbox() geometry.Letterbox {
	return v.state.Letterbox(v.canvas)
}

// refit keeps FitRatio in step with the status and canvas: the letterbox
// ratio while Normal or Drawing, zero otherwise.
func (v *Viewer) refit() {
	s := v.state.Status
	if v.state.HasImage() && (s == viewport.Normal || s == viewport.Drawing) {
		v.state.FitRatio = v.letterbox().Ratio
		return
	}
	v.state.FitRatio = 0
}

// redraw refits and requests a paint.
func (v *Viewer) redraw() {
	v.refit()
	if v.sender != nil {
		v.sender.Send(paint.Event{})
	}
}
