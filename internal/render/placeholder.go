package render

import (
	"image"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/alignview/internal/theme"
)

const placeholderSize = 32

var (
	faceOnce sync.Once
	faceVal  font.Face
	faceErr  error
)

func placeholderFace() (font.Face, error) {
	faceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			faceErr = err
			return
		}
		faceVal, faceErr = opentype.NewFace(f, &opentype.FaceOptions{Size: placeholderSize, DPI: 72, Hinting: font.HintingFull})
	})
	return faceVal, faceErr
}

// drawPlaceholder fills dst and centres the "no image" message on it, with
// the baseline on the vertical middle.
func drawPlaceholder(dst *image.RGBA, th *theme.Theme) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(th.Placeholder), image.Point{}, draw.Src)

	face, err := placeholderFace()
	if err != nil {
		return
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.PlaceholderText), Face: face}
	w := d.MeasureString(theme.PlaceholderMessage)
	x := fixed.I(b.Min.X) + (fixed.I(b.Dx())-w)/2
	y := fixed.I(b.Min.Y + b.Dy()/2)
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(theme.PlaceholderMessage)
}
