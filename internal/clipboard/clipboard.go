// Package clipboard copies rendered frames to, and pastes images from, the
// system clipboard.
package clipboard

import (
	"context"
	"errors"
	"image"
	"os"
)

var (
	// ErrNoDisplay is returned when no graphical session is available.
	ErrNoDisplay = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")
	// ErrEmpty is returned when the clipboard holds no image.
	ErrEmpty = errors.New("clipboard does not contain image data")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// Paste reads the clipboard image in the shape the viewer's background
// loader expects.
func Paste(ctx context.Context) (image.Image, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	img, err := ReadImage()
	if err != nil {
		return nil, "", err
	}
	return img, "png", nil
}
