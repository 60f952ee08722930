//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"image"
	"sync"
)

var (
	initOnce sync.Once
	initErr  error

	errCGODisabled = errors.New("clipboard operations require cgo support")
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = ErrNoDisplay
			return
		}
		initErr = errCGODisabled
	})
	return initErr
}

// WriteImage always fails without cgo.
func WriteImage(image.Image) error {
	return ensureInit()
}

// ReadImage always fails without cgo.
func ReadImage() (image.Image, error) {
	return nil, ensureInit()
}
