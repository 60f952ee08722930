package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestFitWideImageInSquareCanvas(t *testing.T) {
	lb := Fit(Sz(400, 400), Sz(200, 100))
	if lb.DrawW != 400 || lb.DrawH != 200 {
		t.Fatalf("draw size = %vx%v, want 400x200", lb.DrawW, lb.DrawH)
	}
	if lb.OffsetX != 0 || lb.OffsetY != 100 {
		t.Fatalf("offset = (%v,%v), want (0,100)", lb.OffsetX, lb.OffsetY)
	}
	if lb.Ratio != 2 {
		t.Fatalf("ratio = %v, want 2", lb.Ratio)
	}
}

func TestFitTallImageFillsHeight(t *testing.T) {
	lb := Fit(Sz(800, 400), Sz(100, 200))
	if lb.DrawH != 400 || lb.DrawW != 200 {
		t.Fatalf("draw size = %vx%v, want 200x400", lb.DrawW, lb.DrawH)
	}
	if lb.OffsetX != 300 || lb.OffsetY != 0 {
		t.Fatalf("offset = (%v,%v), want (300,0)", lb.OffsetX, lb.OffsetY)
	}
}

func TestFitBoundsAndCentring(t *testing.T) {
	canvases := []Size{Sz(400, 400), Sz(1920, 1080), Sz(333, 777), Sz(1, 1000)}
	images := []Size{Sz(200, 100), Sz(3000, 4000), Sz(17, 17), Sz(1, 5)}
	for _, c := range canvases {
		for _, img := range images {
			lb := Fit(c, img)
			if lb.DrawW > c.W+eps || lb.DrawH > c.H+eps {
				t.Fatalf("fit %v in %v overflows: %+v", img, c, lb)
			}
			if !near(lb.DrawW, c.W) && !near(lb.DrawH, c.H) {
				t.Fatalf("fit %v in %v fills neither axis: %+v", img, c, lb)
			}
			if !near(lb.OffsetX, (c.W-lb.DrawW)/2) || !near(lb.OffsetY, (c.H-lb.DrawH)/2) {
				t.Fatalf("fit %v in %v not centred: %+v", img, c, lb)
			}
			if !near(lb.DrawW/lb.DrawH, img.W/img.H) {
				t.Fatalf("fit %v in %v changed aspect: %+v", img, c, lb)
			}
		}
	}
}

func TestFitEmpty(t *testing.T) {
	if lb := Fit(Sz(0, 100), Sz(10, 10)); lb.Valid() {
		t.Fatalf("expected invalid letterbox for empty canvas, got %+v", lb)
	}
	if lb := Fit(Sz(100, 100), Sz(10, 0)); lb.Valid() {
		t.Fatalf("expected invalid letterbox for empty image, got %+v", lb)
	}
}

func TestFitIsIdempotent(t *testing.T) {
	a := Fit(Sz(640, 480), Sz(1234, 567))
	b := Fit(Sz(640, 480), Sz(1234, 567))
	if a != b {
		t.Fatalf("repeated fit differs: %+v vs %+v", a, b)
	}
}

func TestRoundTrip(t *testing.T) {
	lb := Fit(Sz(1024, 600), Sz(3000, 2000))
	points := []Point{Pt(0, 0), Pt(512, 300), Pt(13.5, 599.25), Pt(-20, 700)}
	for _, p := range points {
		back := lb.ToCanvas(lb.ToImage(p))
		if !near(back.X, p.X) || !near(back.Y, p.Y) {
			t.Fatalf("round trip of %v gave %v", p, back)
		}
	}
}

func TestAngleSign(t *testing.T) {
	if a := Angle(Pt(0, 0), Pt(10, 0)); a != 0 {
		t.Fatalf("horizontal angle = %v, want 0", a)
	}
	if a := Angle(Pt(0, 0), Pt(0, 10)); !near(a, 90) {
		t.Fatalf("vertical angle = %v, want 90", a)
	}
	a := Angle(Pt(0, 0), Pt(-10, 0))
	if !near(math.Abs(NormalizeDegrees(a)), 180) {
		t.Fatalf("reverse angle = %v, want 180 mod 360", a)
	}
}

func TestPickScenarioPivot(t *testing.T) {
	lb := Fit(Sz(400, 400), Sz(200, 100))
	start, end := Pt(50, 150), Pt(150, 150)
	pivot := Midpoint(lb.ToImage(start), lb.ToImage(end))
	if pivot != Pt(50, 25) {
		t.Fatalf("pivot = %v, want (50,25)", pivot)
	}
	if a := Angle(start, end); a != 0 {
		t.Fatalf("angle = %v, want 0", a)
	}
}

func TestPivotTransformCentresPivot(t *testing.T) {
	canvas := Sz(400, 300)
	pivot := Pt(125, 25)
	for _, angle := range []float64{0, 30, -45, 90, 180} {
		m := PivotTransform(canvas, pivot, angle)
		got := Apply(m, pivot)
		if !near(got.X, 200) || !near(got.Y, 150) {
			t.Fatalf("angle %v: pivot mapped to %v, want canvas centre", angle, got)
		}
	}
}

func TestPivotTransformLevelsPickedLine(t *testing.T) {
	start, end := Pt(10, 10), Pt(40, 50)
	angle := Angle(start, end)
	m := PivotTransform(Sz(100, 100), Midpoint(start, end), angle)
	a, b := Apply(m, start), Apply(m, end)
	if !near(a.Y, b.Y) {
		t.Fatalf("picked line not horizontal after rotation: %v -> %v", a, b)
	}
	if b.X <= a.X {
		t.Fatalf("picked line reversed: %v -> %v", a, b)
	}
}

func TestScaledTransform(t *testing.T) {
	m := ScaledTransform(2, 10, 20)
	if got := Apply(m, Pt(0, 0)); got != Pt(-10, -20) {
		t.Fatalf("origin mapped to %v", got)
	}
	if got := Apply(m, Pt(5, 5)); got != Pt(0, -10) {
		t.Fatalf("(5,5) mapped to %v", got)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	cases := map[float64]float64{0: 0, 180: 180, -180: 180, 270: -90, -450: -90, 720: 0}
	for in, want := range cases {
		if got := NormalizeDegrees(in); !near(got, want) {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", in, got, want)
		}
	}
}
