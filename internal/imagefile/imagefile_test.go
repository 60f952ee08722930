package imagefile

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	p := filepath.Join(dir, "item.png")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNormalize(t *testing.T) {
	if got := Normalize(` C:\images\item.png `); got != "C:/images/item.png" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestDecodePNG(t *testing.T) {
	p := writePNG(t, t.TempDir(), 20, 10)
	img, format, err := Decode(context.Background(), p)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "png" || img.Bounds().Dx() != 20 || img.Bounds().Dy() != 10 {
		t.Fatalf("unexpected result %s %v", format, img.Bounds())
	}
}

func TestDecodeMissing(t *testing.T) {
	_, _, err := Decode(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(p, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Decode(context.Background(), p); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDecodeCancelled(t *testing.T) {
	p := writePNG(t, t.TempDir(), 2, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Decode(ctx, p); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
