// Package render paints a viewport state onto an RGBA surface. Painting is
// a pure function of the state, the surface size and the theme.
package render

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/example/alignview/internal/geometry"
	"github.com/example/alignview/internal/theme"
	"github.com/example/alignview/internal/viewport"
)

// Mode is the visual mode chosen for a frame.
type Mode int

const (
	ModePlaceholder Mode = iota
	ModeLetterbox
	ModeScaled
	ModePivot
)

func (m Mode) String() string {
	switch m {
	case ModePlaceholder:
		return "placeholder"
	case ModeLetterbox:
		return "letterbox"
	case ModeScaled:
		return "scaled"
	case ModePivot:
		return "pivot"
	}
	return "unknown"
}

// Layout describes what a frame paints and where.
type Layout struct {
	Mode   Mode
	Canvas geometry.Size
	// Fit is set for ModeLetterbox.
	Fit geometry.Letterbox
	// Matrix maps image space to canvas space for every mode but
	// ModePlaceholder.
	Matrix f64.Aff3
	// Pivot is the image-space rotation centre for ModePivot.
	Pivot geometry.Point
	// Line is true when the live pick line is drawn over the image.
	Line bool
}

// Interpolator resamples the image for every mode.
var Interpolator xdraw.Interpolator = xdraw.ApproxBiLinear

// Plan computes the layout for st on a canvas without painting anything.
func Plan(st *viewport.State, canvas geometry.Size) Layout {
	l := Layout{Mode: ModePlaceholder, Canvas: canvas}
	if !st.HasImage() || canvas.Empty() {
		return l
	}
	switch st.Status {
	case viewport.Normal, viewport.Drawing:
		l.Fit = st.Letterbox(canvas)
		if !l.Fit.Valid() {
			return l
		}
		l.Mode = ModeLetterbox
		l.Matrix = l.Fit.Transform()
		l.Line = st.Status == viewport.Drawing && st.PickValid()
	case viewport.StartScale:
		l.Mode = ModeScaled
		l.Matrix = geometry.ScaledTransform(st.Transform.Scale, st.Transform.OffsetX, st.Transform.OffsetY)
	case viewport.ZoomAndRotate:
		pivot, ok := st.Pivot(canvas)
		if !ok {
			pivot = st.Image.Size().Center()
		}
		l.Mode = ModePivot
		l.Pivot = pivot
		l.Matrix = geometry.PivotTransform(canvas, pivot, st.Transform.Angle)
	}
	return l
}

// Frame clears dst and paints st onto it. The returned layout is what the
// caller should record (for example the fit ratio). st is not modified.
func Frame(dst *image.RGBA, st *viewport.State, th *theme.Theme) Layout {
	if th == nil {
		th = theme.Default()
	}
	b := dst.Bounds()
	canvas := geometry.Sz(float64(b.Dx()), float64(b.Dy()))
	l := Plan(st, canvas)

	draw.Draw(dst, b, image.NewUniform(th.Background), image.Point{}, draw.Src)

	switch l.Mode {
	case ModePlaceholder:
		drawPlaceholder(dst, th)
	default:
		src := st.Image.Src
		m := originAt(l.Matrix, src.Bounds().Min)
		m = offsetBy(m, b.Min)
		Interpolator.Transform(dst, m, src, src.Bounds(), draw.Over, nil)
		if l.Line {
			p := st.Pick
			x0, y0 := b.Min.X+round(p.Start.X), b.Min.Y+round(p.Start.Y)
			x1, y1 := b.Min.X+round(p.End.X), b.Min.Y+round(p.End.Y)
			drawLine(dst, x0, y0, x1, y1, th.PickLine, th.PickLineWidth)
		}
	}
	return l
}

// originAt adjusts m for a source image whose bounds do not start at 0,0.
func originAt(m f64.Aff3, min image.Point) f64.Aff3 {
	if min == (image.Point{}) {
		return m
	}
	x, y := float64(min.X), float64(min.Y)
	m[2] -= m[0]*x + m[1]*y
	m[5] -= m[3]*x + m[4]*y
	return m
}

// offsetBy shifts m for a destination whose bounds do not start at 0,0.
func offsetBy(m f64.Aff3, min image.Point) f64.Aff3 {
	m[2] += float64(min.X)
	m[5] += float64(min.Y)
	return m
}

func round(v float64) int { return int(math.Round(v)) }
