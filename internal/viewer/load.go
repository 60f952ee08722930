package viewer

import (
	"context"
	"errors"
	"image"

	"github.com/example/alignview/internal/imagefile"
	"github.com/example/alignview/internal/viewport"
)

// LoadResult carries a finished decode back to the event loop.
type LoadResult struct {
	Seq    uint64
	Path   string
	Image  image.Image
	Format string
	Params *viewport.TransformParams
	Err    error
}

// LoadImage starts decoding path in the background and returns the load's
// sequence number. The result is sent to the Viewer's Sender and must be
// passed to HandleLoadResult on the owning goroutine. A newer LoadImage or
// Clear supersedes this one. Any in-progress pick is discarded immediately.
func (v *Viewer) LoadImage(path string, params *viewport.TransformParams) uint64 {
	path = imagefile.Normalize(path)
	return v.LoadFrom(path, func(ctx context.Context) (image.Image, string, error) {
		return v.decode(ctx, path)
	}, params)
}

// LoadFrom is LoadImage with a caller supplied source, such as the
// clipboard. name is what the image is reported as.
func (v *Viewer) LoadFrom(name string, src func(context.Context) (image.Image, string, error), params *viewport.TransformParams) uint64 {
	seq, ctx := v.supersede()
	v.discardPick()
	if params != nil {
		p := *params
		params = &p
	}
	v.logger.Debug("load requested", "path", name, "seq", seq)

	go func() {
		img, format, err := src(ctx)
		if ctx.Err() != nil {
			return
		}
		res := LoadResult{Seq: seq, Path: name, Image: img, Format: format, Params: params, Err: err}
		if v.sender != nil {
			v.sender.Send(res)
		}
	}()
	return seq
}

// LoadImageWait decodes path on the calling goroutine and applies the
// result. It is used where no event loop exists, such as headless rendering.
func (v *Viewer) LoadImageWait(ctx context.Context, path string, params *viewport.TransformParams) error {
	seq, _ := v.supersede()
	path = imagefile.Normalize(path)
	v.discardPick()
	v.logger.Debug("load requested", "path", path, "seq", seq)
	img, format, err := v.decode(ctx, path)
	v.HandleLoadResult(LoadResult{Seq: seq, Path: path, Image: img, Format: format, Params: params, Err: err})
	return err
}

// HandleLoadResult applies a decode result unless a newer load or clear has
// superseded it. It reports whether the result was applied.
func (v *Viewer) HandleLoadResult(res LoadResult) bool {
	if res.Seq != v.seq {
		v.logger.Debug("stale load discarded", "path", res.Path, "seq", res.Seq, "latest", v.seq)
		return false
	}
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.state.ClearPick()

	if res.Err == nil && res.Image == nil {
		res.Err = errors.New("decoder returned no image")
	}
	if res.Err != nil {
		v.logger.Warn("image load failed", "path", res.Path, "err", res.Err)
		v.state.Image = nil
		v.state.Status = viewport.None
	} else {
		v.state.Image = &viewport.Image{Src: res.Image, Path: res.Path}
		if res.Params != nil {
			if err := res.Params.Validate(); err != nil {
				v.logger.Warn("load transform ignored", "err", err)
			} else {
				v.state.Transform = *res.Params
			}
		}
		v.state.Status = viewport.StartScale
		b := res.Image.Bounds()
		v.logger.Info("image loaded", "path", res.Path, "format", res.Format, "width", b.Dx(), "height", b.Dy())
	}
	if v.onLoad != nil {
		v.onLoad(res)
	}
	v.redraw()
	return true
}

// Pending reports whether a background load is in flight.
func (v *Viewer) Pending() bool { return v.cancel != nil }

// supersede invalidates any in-flight load and returns the new sequence
// number with a context for its decode.
func (v *Viewer) supersede() (uint64, context.Context) {
	if v.cancel != nil {
		v.cancel()
		v.logger.Debug("load superseded", "seq", v.seq)
	}
	v.seq++
	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel
	return v.seq, ctx
}

func (v *Viewer) discardPick() {
	v.state.ClearPick()
	if v.state.Status == viewport.Drawing || v.state.Status == viewport.ZoomAndRotate {
		v.state.Status = viewport.Normal
	}
	v.refit()
}
