// Package geometry holds the coordinate-space math used by the viewer:
// letterbox fitting, canvas/image conversion and the affine placements the
// renderer paints with. Nothing here keeps state.
package geometry

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Point is a position in either canvas space or image space. Callers say
// which in their own documentation; there is no implicit conversion.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Eq reports whether two points are identical.
func (p Point) Eq(q Point) bool { return p.X == q.X && p.Y == q.Y }

// Size is a width and height in pixels.
type Size struct {
	W, H float64
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h float64) Size { return Size{W: w, H: h} }

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Center returns the middle of a surface of this size.
func (s Size) Center() Point { return Point{X: s.W / 2, Y: s.H / 2} }

// Letterbox describes an image fitted into a canvas with its aspect ratio
// preserved: one axis is filled, the other centred.
type Letterbox struct {
	DrawW, DrawH     float64
	OffsetX, OffsetY float64
	// Ratio maps image-space distances to canvas-space distances.
	Ratio float64
}

// Valid reports whether the letterbox can be used for mapping.
func (l Letterbox) Valid() bool { return l.Ratio > 0 }

// Fit letterboxes an image of size img into a canvas of size canvas. An
// empty canvas or image yields the zero Letterbox.
func Fit(canvas, img Size) Letterbox {
	if canvas.Empty() || img.Empty() {
		return Letterbox{}
	}
	var lb Letterbox
	if canvas.W/canvas.H > img.W/img.H {
		lb.DrawH = canvas.H
		lb.DrawW = canvas.H * img.W / img.H
	} else {
		lb.DrawW = canvas.W
		lb.DrawH = canvas.W * img.H / img.W
	}
	lb.OffsetX = (canvas.W - lb.DrawW) / 2
	lb.OffsetY = (canvas.H - lb.DrawH) / 2
	lb.Ratio = lb.DrawW / img.W
	return lb
}

// ToImage converts a canvas-space point to image space.
func (l Letterbox) ToImage(p Point) Point {
	if !l.Valid() {
		return Point{}
	}
	return Point{X: (p.X - l.OffsetX) / l.Ratio, Y: (p.Y - l.OffsetY) / l.Ratio}
}

// ToCanvas converts an image-space point to canvas space.
func (l Letterbox) ToCanvas(p Point) Point {
	return Point{X: p.X*l.Ratio + l.OffsetX, Y: p.Y*l.Ratio + l.OffsetY}
}

// Transform returns the image-to-canvas matrix for the letterbox.
func (l Letterbox) Transform() f64.Aff3 {
	return f64.Aff3{
		l.Ratio, 0, l.OffsetX,
		0, l.Ratio, l.OffsetY,
	}
}

// Angle returns the direction of the line from a to b in degrees, measured
// with atan2 so the result lies in (-180, 180]. Both points must be in the
// same space.
func Angle(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// PivotTransform returns the image-to-canvas matrix that moves the
// image-space pivot to the centre of the canvas and rotates by -angleDeg
// around it. The image is not scaled.
func PivotTransform(canvas Size, pivot Point, angleDeg float64) f64.Aff3 {
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	c := canvas.Center()
	// translate(c) * rotate(-angle) * translate(-pivot), with Y growing down.
	return f64.Aff3{
		cos, sin, c.X - (cos*pivot.X + sin*pivot.Y),
		-sin, cos, c.Y - (-sin*pivot.X + cos*pivot.Y),
	}
}

// ScaledTransform returns the image-to-canvas matrix that draws the image at
// (-offsetX, -offsetY) scaled by scale.
func ScaledTransform(scale, offsetX, offsetY float64) f64.Aff3 {
	return f64.Aff3{
		scale, 0, -offsetX,
		0, scale, -offsetY,
	}
}

// Apply maps p through m.
func Apply(m f64.Aff3, p Point) Point {
	return Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// NormalizeDegrees folds an angle into (-180, 180].
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}
