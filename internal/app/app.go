// Package app runs the viewer in a shiny window. The window's event loop is
// the only goroutine that touches the viewer; decodes, settings fetches and
// control requests report back to it as events.
package app

import (
	"context"
	"errors"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/alignview/internal/clipboard"
	"github.com/example/alignview/internal/control"
	"github.com/example/alignview/internal/notify"
	"github.com/example/alignview/internal/platform"
	"github.com/example/alignview/internal/settings"
	"github.com/example/alignview/internal/theme"
	"github.com/example/alignview/internal/viewer"
	"github.com/example/alignview/internal/viewport"
)

const settingsTimeout = 5 * time.Second

// Window holds the configuration and loop state of the viewer window.
type Window struct {
	width, height int
	ctx           context.Context
	theme         *theme.Theme
	logger        *log.Logger
	notifier      *notify.Notifier
	bridge        settings.Bridge
	listen        string

	initialPath   string
	initialParams *viewport.TransformParams
	viewerOpts    []viewer.Option

	fwd *forwarder
	v   *viewer.Viewer
	ptr pointer
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithViewer passes extra options to the viewer the window creates.
func WithViewer(opts ...viewer.Option) Option {
	return func(a *Window) { a.viewerOpts = append(a.viewerOpts, opts...) }
}

// WithTheme sets the paint theme.
func WithTheme(t *theme.Theme) Option { return func(a *Window) { a.theme = t } }

// WithSize sets the initial window size in pixels.
func WithSize(w, h int) Option {
	return func(a *Window) {
		if w > 0 && h > 0 {
			a.width, a.height = w, h
		}
	}
}

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *Window) { a.notifier = n } }

// WithLogger sets the logger shared with the viewer and control server.
func WithLogger(l *log.Logger) Option { return func(a *Window) { a.logger = l } }

// WithControl serves the HTTP control API on addr while the window is open.
func WithControl(addr string) Option { return func(a *Window) { a.listen = addr } }

// WithSettings sets the source of saved placements. It is fetched once at
// start up and again on Ctrl+O or /settings/reload.
func WithSettings(b settings.Bridge) Option { return func(a *Window) { a.bridge = b } }

// WithInitialLoad loads path as soon as the window opens.
func WithInitialLoad(path string, params *viewport.TransformParams) Option {
	return func(a *Window) { a.initialPath, a.initialParams = path, params }
}

// WithContext sets the context that bounds background work.
func WithContext(ctx context.Context) Option { return func(a *Window) { a.ctx = ctx } }

// New creates a Window and its viewer.
func New(opts ...Option) *Window {
	a := &Window{
		width:  1280,
		height: 800,
		ctx:    context.Background(),
		theme:  theme.Default(),
		logger: log.Default(),
		bridge: settings.Nop{},
		fwd:    &forwarder{},
	}
	for _, o := range opts {
		o(a)
	}
	base := []viewer.Option{
		viewer.WithSender(a.fwd),
		viewer.WithLogger(a.logger),
		viewer.WithTheme(a.theme),
		viewer.WithContext(a.ctx),
		viewer.WithCanvas(a.width, a.height),
		viewer.WithPickListener(func(p viewer.Pick) { a.notifier.Pick(p.Angle) }),
		viewer.WithLoadListener(func(res viewer.LoadResult) {
			if res.Err != nil {
				a.notifier.LoadFailure(res.Path, res.Err)
			}
		}),
	}
	a.v = viewer.New(append(base, a.viewerOpts...)...)
	return a
}

// Viewer returns the window's viewer. It must only be used on the event loop.
func (a *Window) Viewer() *viewer.Viewer { return a.v }

// Run executes the UI loop using shiny's driver.
func (a *Window) Run() { driver.Main(a.Main) }

// Main opens the window on s and runs the event loop until the window is
// closed or Escape is pressed.
func (a *Window) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: platform.AppName})
	if err != nil {
		a.logger.Error("new window", "err", err)
		return
	}
	defer w.Release()

	a.fwd.attach(w)
	defer a.fwd.attach(nil)

	if a.listen != "" {
		stop := a.serveControl(w)
		defer stop()
	}
	if a.initialPath != "" {
		a.v.LoadImage(a.initialPath, a.initialParams)
	}
	if _, none := a.bridge.(settings.Nop); !none {
		a.reloadSettings()
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			a.v.Resize(e.WidthPx, e.HeightPx)
		case paint.Event:
			a.paint(s, w)
		case mouse.Event:
			a.handleMouse(e, time.Now())
		case key.Event:
			if act, ok := lookup(e); ok && !a.perform(act) {
				return
			}
		case viewer.LoadResult:
			a.v.HandleLoadResult(e)
		case settingsResult:
			a.applySettings(e)
		case control.Command:
			e.Apply(a.v)
		case error:
			a.logger.Error("window event", "err", e)
		}
	}
}

func (a *Window) handleMouse(e mouse.Event, now time.Time) {
	for _, pe := range a.ptr.translate(e, now) {
		a.v.HandlePointer(pe)
	}
}

func (a *Window) paint(s screen.Screen, w screen.Window) {
	c := a.v.Canvas()
	if c.Empty() {
		return
	}
	b, err := s.NewBuffer(image.Point{int(c.W), int(c.H)})
	if err != nil {
		a.logger.Error("new buffer", "err", err)
		return
	}
	defer b.Release()
	a.v.Paint(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// perform runs a keyboard action. It returns false when the window should
// close.
func (a *Window) perform(act action) bool {
	switch act {
	case actionCopy:
		frame := a.v.Render()
		if err := clipboard.WriteImage(frame); err != nil {
			a.logger.Warn("copy", "err", err)
			return true
		}
		a.logger.Info("frame copied to clipboard")
		a.notifier.Copy("frame", frame)
	case actionPaste:
		a.v.LoadFrom("clipboard", clipboard.Paste, nil)
	case actionReset:
		a.v.ResetToStartScale()
	case actionReloadSettings:
		a.reloadSettings()
	case actionQuit:
		return false
	}
	return true
}

type settingsResult struct {
	resp settings.Response
	err  error
}

func (a *Window) reloadSettings() {
	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, settingsTimeout)
		defer cancel()
		resp, err := a.bridge.Fetch(ctx)
		a.fwd.Send(settingsResult{resp: resp, err: err})
	}()
}

func (a *Window) applySettings(r settingsResult) {
	if r.err != nil {
		a.logger.Warn("settings fetch failed", "err", r.err)
		return
	}
	_ = a.v.ApplySettings(r.resp)
}

func (a *Window) serveControl(p control.Poster) func() {
	srv := &http.Server{
		Addr:              a.listen,
		Handler:           control.New(p, control.WithBridge(a.bridge), control.WithLogger(a.logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		a.logger.Info("control API listening", "addr", a.listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("control API", "err", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// forwarder hands events to the window once it exists and drops them after
// it closes.
type forwarder struct {
	mu sync.Mutex
	to viewer.Sender
}

func (f *forwarder) attach(s viewer.Sender) {
	f.mu.Lock()
	f.to = s
	f.mu.Unlock()
}

func (f *forwarder) Send(ev interface{}) {
	f.mu.Lock()
	to := f.to
	f.mu.Unlock()
	if to != nil {
		to.Send(ev)
	}
}
