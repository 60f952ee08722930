// Package viewport holds the mutable model behind the viewer: the loaded
// image, the status of the transform state machine, the placement
// parameters and the in-progress pick line.
package viewport

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/example/alignview/internal/geometry"
)

var (
	// ErrInvalidScale is returned when a scale of zero or less is supplied.
	ErrInvalidScale = errors.New("scale must be greater than zero")
	// ErrUnknownStatus is returned when a status name cannot be parsed.
	ErrUnknownStatus = errors.New("unknown status")
)

// Status is the state of the transform state machine.
type Status int

const (
	None Status = iota
	Normal
	Drawing
	StartScale
	ZoomAndRotate
)

// Statuses lists every status in declaration order.
var Statuses = []Status{None, Normal, Drawing, StartScale, ZoomAndRotate}

var statusNames = map[Status]string{
	None:          "none",
	Normal:        "normal",
	Drawing:       "drawing",
	StartScale:    "startScale",
	ZoomAndRotate: "zoomAndRotate",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus converts a status name to a Status. Matching ignores case,
// dashes and underscores so "zoom_and_rotate" and "ZoomAndRotate" both work.
func ParseStatus(name string) (Status, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	for s, n := range statusNames {
		if strings.ToLower(n) == key {
			return s, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// TransformParams is the restorable view configuration. Angle is in
// degrees, counter-clockwise positive from the horizontal.
type TransformParams struct {
	Scale   float64 `json:"scale" toml:"scale"`
	OffsetX float64 `json:"offset_x" toml:"offset_x"`
	OffsetY float64 `json:"offset_y" toml:"offset_y"`
	Angle   float64 `json:"angle" toml:"angle"`
}

// DefaultTransform returns an unscaled, unrotated placement at the origin.
func DefaultTransform() TransformParams {
	return TransformParams{Scale: 1}
}

// Validate reports ErrInvalidScale for a non-positive scale.
func (t TransformParams) Validate() error {
	if !(t.Scale > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidScale, t.Scale)
	}
	return nil
}

// SetScale updates the scale, rejecting values of zero or less.
func (t *TransformParams) SetScale(scale float64) error {
	if !(scale > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	t.Scale = scale
	return nil
}

// Image is a decoded raster and the path it came from.
type Image struct {
	Src  image.Image
	Path string
}

// Size returns the intrinsic image size.
func (i *Image) Size() geometry.Size {
	if i == nil || i.Src == nil {
		return geometry.Size{}
	}
	b := i.Src.Bounds()
	return geometry.Sz(float64(b.Dx()), float64(b.Dy()))
}

// Pick is the operator's reference line in canvas space.
type Pick struct {
	Start, End geometry.Point
}

// Degenerate reports whether the line has zero length.
func (p Pick) Degenerate() bool { return p.Start.Eq(p.End) }

// State is the single mutable model of a viewer.
type State struct {
	Status    Status
	Image     *Image
	Transform TransformParams
	Pick      *Pick
	// FitRatio is the current letterbox ratio while Normal or Drawing, else 0.
	FitRatio float64
}

// New returns a state with no image and the default transform.
func New() *State {
	return &State{Status: None, Transform: DefaultTransform()}
}

// HasImage reports whether an image is loaded.
func (s *State) HasImage() bool { return s.Image != nil && s.Image.Src != nil }

// PickValid reports whether Pick may be read.
func (s *State) PickValid() bool {
	return s.Pick != nil && (s.Status == Drawing || s.Status == ZoomAndRotate)
}

// ClearPick discards the pick line.
func (s *State) ClearPick() { s.Pick = nil }

// Letterbox fits the current image into a canvas of the given size.
func (s *State) Letterbox(canvas geometry.Size) geometry.Letterbox {
	return geometry.Fit(canvas, s.Image.Size())
}

// Pivot returns the image-space midpoint of the pick line under the
// letterbox for canvas. It is recomputed on every call so the result follows
// canvas resizes.
func (s *State) Pivot(canvas geometry.Size) (geometry.Point, bool) {
	if !s.PickValid() || !s.HasImage() {
		return geometry.Point{}, false
	}
	lb := s.Letterbox(canvas)
	if !lb.Valid() {
		return geometry.Point{}, false
	}
	return geometry.Midpoint(lb.ToImage(s.Pick.Start), lb.ToImage(s.Pick.End)), true
}

// Snapshot is a read-only copy of the state suitable for reporting.
type Snapshot struct {
	Status    Status          `json:"status"`
	Transform TransformParams `json:"transform"`
	ImagePath string          `json:"image,omitempty"`
	ImageW    int             `json:"image_width,omitempty"`
	ImageH    int             `json:"image_height,omitempty"`
	Pick      *Pick           `json:"pick,omitempty"`
	FitRatio  float64         `json:"fit_ratio"`
}

// Snapshot copies the reportable parts of the state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{Status: s.Status, Transform: s.Transform, FitRatio: s.FitRatio}
	if s.HasImage() {
		snap.ImagePath = s.Image.Path
		b := s.Image.Src.Bounds()
		snap.ImageW, snap.ImageH = b.Dx(), b.Dy()
	}
	if s.PickValid() {
		p := *s.Pick
		snap.Pick = &p
	}
	return snap
}
