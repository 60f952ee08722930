package render

import (
	"image"
	"image/color"
	"image/draw"
	"reflect"
	"testing"

	"github.com/example/alignview/internal/geometry"
	"github.com/example/alignview/internal/theme"
	"github.com/example/alignview/internal/viewport"
)

var blue = color.RGBA{0, 0, 255, 255}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func loaded(status viewport.Status) *viewport.State {
	st := viewport.New()
	st.Image = &viewport.Image{Src: solid(200, 100, blue), Path: "item.png"}
	st.Status = status
	return st
}

func TestFramePlaceholderWithoutImage(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 320, 240))
	th := theme.Default()
	l := Frame(dst, viewport.New(), th)
	if l.Mode != ModePlaceholder {
		t.Fatalf("mode = %v, want placeholder", l.Mode)
	}
	if got := dst.RGBAAt(2, 2); got != th.Placeholder {
		t.Fatalf("corner = %+v, want placeholder fill %+v", got, th.Placeholder)
	}
	found := false
	for x := 0; x < 320 && !found; x++ {
		for y := 90; y < 125; y++ {
			if dst.RGBAAt(x, y) == th.PlaceholderText {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("placeholder text was not painted")
	}
}

func TestFrameLetterbox(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 400, 400))
	th := theme.Default()
	l := Frame(dst, loaded(viewport.Normal), th)
	if l.Mode != ModeLetterbox {
		t.Fatalf("mode = %v, want letterbox", l.Mode)
	}
	if l.Fit.DrawW != 400 || l.Fit.DrawH != 200 || l.Fit.OffsetY != 100 || l.Fit.Ratio != 2 {
		t.Fatalf("unexpected fit %+v", l.Fit)
	}
	if got := dst.RGBAAt(200, 50); got != th.Background {
		t.Fatalf("letterbox bar = %+v, want background", got)
	}
	if got := dst.RGBAAt(200, 200); got != blue {
		t.Fatalf("image centre = %+v, want image colour", got)
	}
}

func TestFrameDrawingOverlaysLine(t *testing.T) {
	st := loaded(viewport.Drawing)
	st.Pick = &viewport.Pick{Start: geometry.Pt(50, 150), End: geometry.Pt(150, 150)}
	dst := image.NewRGBA(image.Rect(0, 0, 400, 400))
	th := theme.Default()
	l := Frame(dst, st, th)
	if !l.Line {
		t.Fatalf("expected the live line in the layout")
	}
	if got := dst.RGBAAt(100, 150); got != th.PickLine {
		t.Fatalf("line pixel = %+v, want %+v", got, th.PickLine)
	}
	if got := dst.RGBAAt(100, 160); got != blue {
		t.Fatalf("pixel off the line = %+v, want image colour", got)
	}
}

func TestFrameScaledPlacement(t *testing.T) {
	st := loaded(viewport.StartScale)
	st.Transform = viewport.TransformParams{Scale: 1, OffsetX: 10, OffsetY: 10}
	dst := image.NewRGBA(image.Rect(0, 0, 400, 400))
	th := theme.Default()
	l := Frame(dst, st, th)
	if l.Mode != ModeScaled {
		t.Fatalf("mode = %v, want scaled", l.Mode)
	}
	if got := dst.RGBAAt(50, 50); got != blue {
		t.Fatalf("inside = %+v, want image colour", got)
	}
	if got := dst.RGBAAt(250, 50); got != th.Background {
		t.Fatalf("right of image = %+v, want background", got)
	}
	if got := dst.RGBAAt(50, 150); got != th.Background {
		t.Fatalf("below image = %+v, want background", got)
	}
}

func TestFramePivot(t *testing.T) {
	st := loaded(viewport.ZoomAndRotate)
	st.Pick = &viewport.Pick{Start: geometry.Pt(50, 150), End: geometry.Pt(150, 150)}
	dst := image.NewRGBA(image.Rect(0, 0, 400, 400))
	th := theme.Default()

	l := Frame(dst, st, th)
	if l.Mode != ModePivot || l.Pivot != geometry.Pt(50, 25) {
		t.Fatalf("unexpected layout %+v", l)
	}
	// pivot (50,25) sits at the centre, so the image spans x 150..350, y 175..275.
	if got := dst.RGBAAt(300, 250); got != blue {
		t.Fatalf("inside = %+v, want image colour", got)
	}
	if got := dst.RGBAAt(100, 100); got != th.Background {
		t.Fatalf("outside = %+v, want background", got)
	}

	st.Transform.Angle = 90
	Frame(dst, st, th)
	// rotated a quarter turn the image spans x 175..275, y 50..250.
	if got := dst.RGBAAt(225, 100); got != blue {
		t.Fatalf("rotated inside = %+v, want image colour", got)
	}
	if got := dst.RGBAAt(300, 100); got != th.Background {
		t.Fatalf("rotated outside = %+v, want background", got)
	}
}

func TestFrameIsPure(t *testing.T) {
	st := loaded(viewport.Drawing)
	st.Pick = &viewport.Pick{Start: geometry.Pt(10, 120), End: geometry.Pt(300, 260)}
	before := st.Snapshot()
	dst := image.NewRGBA(image.Rect(0, 0, 640, 480))

	a := Frame(dst, st, nil)
	first := append([]uint8(nil), dst.Pix...)
	b := Frame(dst, st, nil)

	if a != b {
		t.Fatalf("layout changed between identical frames: %+v vs %+v", a, b)
	}
	if !reflect.DeepEqual(first, dst.Pix) {
		t.Fatalf("pixels changed between identical frames")
	}
	if after := st.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("state mutated by Frame: %+v vs %+v", before, after)
	}
}

func TestFrameClearsPreviousContent(t *testing.T) {
	dst := solid(100, 100, color.RGBA{9, 9, 9, 255})
	st := loaded(viewport.StartScale)
	st.Transform = viewport.TransformParams{Scale: 0.1}
	th := theme.Default()
	Frame(dst, st, th)
	if got := dst.RGBAAt(90, 90); got != th.Background {
		t.Fatalf("stale pixel survived: %+v", got)
	}
}

func TestDrawLineThickness(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	red := color.RGBA{255, 0, 0, 255}
	drawLine(img, 2, 10, 17, 10, red, 3)
	for _, y := range []int{9, 10, 11} {
		if img.RGBAAt(10, y) != red {
			t.Fatalf("expected line pixel at (10,%d)", y)
		}
	}
	if img.RGBAAt(10, 13) == red {
		t.Fatalf("line too thick")
	}
}
