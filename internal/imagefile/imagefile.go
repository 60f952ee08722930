// Package imagefile opens the image formats the inspection cameras and the
// host application produce.
package imagefile

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Normalize trims surrounding space and converts Windows separators to
// forward slashes.
func Normalize(path string) string {
	return strings.ReplaceAll(strings.TrimSpace(path), `\`, "/")
}

// Decode opens and decodes the image at path. It returns early with the
// context error when ctx is cancelled before or after decoding.
func Decode(ctx context.Context, path string) (image.Image, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	path = Normalize(path)
	if path == "" {
		return nil, "", fmt.Errorf("open image: empty path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return img, format, nil
}
