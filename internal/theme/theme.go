package theme

import (
	"fmt"
	"image/color"
	"io"
	"sort"
)

// Theme defines the colors used to paint the viewer surface.
type Theme struct {
	Name string

	Background      color.RGBA // cleared surface behind the image
	Placeholder     color.RGBA // fill of the "no image" state
	PlaceholderText color.RGBA
	PickLine        color.RGBA // live reference line while drawing

	PickLineWidth int
}

// PlaceholderMessage is painted when no image is loaded.
const PlaceholderMessage = "no image"

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:            "default",
		Background:      color.RGBA{255, 255, 255, 255},
		Placeholder:     color.RGBA{0xd3, 0xd3, 0xd3, 255},
		PlaceholderText: color.RGBA{0x00, 0x66, 0xcc, 255},
		PickLine:        color.RGBA{0xff, 0x00, 0x00, 255},
		PickLineWidth:   3,
	}
}

// Write serializes the theme in the same "Key: value" form Parse reads.
func (t *Theme) Write(w io.Writer) error {
	lines := map[string]string{
		"Background":      ToHex(t.Background),
		"Placeholder":     ToHex(t.Placeholder),
		"PlaceholderText": ToHex(t.PlaceholderText),
		"PickLine":        ToHex(t.PickLine),
		"PickLineWidth":   fmt.Sprint(t.PickLineWidth),
	}
	keys := make([]string, 0, len(lines))
	for k := range lines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if _, err := fmt.Fprintf(w, "Name: %s\n", t.Name); err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s: %s\n", k, lines[k]); err != nil {
			return err
		}
	}
	return nil
}

// ToHex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func ToHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
