// Package notify raises desktop notifications for viewer events.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/example/alignview/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventPick fires when a reference line pick completes.
	EventPick Event = "pick"
	// EventLoadFailure fires when an image could not be decoded.
	EventLoadFailure Event = "load_failure"
	// EventCopy fires when the frame is copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences holds the notification title and per-event body templates.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Templates: map[Event]string{
			EventPick:        "Line picked at %s",
			EventLoadFailure: "Could not load %s",
			EventCopy:        "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies ALIGNVIEW_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("ALIGNVIEW_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for key, event := range map[string]Event{
		"ALIGNVIEW_NOTIFY_PICK_TEXT":         EventPick,
		"ALIGNVIEW_NOTIFY_LOAD_FAILURE_TEXT": EventLoadFailure,
		"ALIGNVIEW_NOTIFY_COPY_TEXT":         EventCopy,
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// Notifier sends OS-level notifications for enabled events. A nil Notifier
// is valid and sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	logger  *log.Logger
	send    func(title, body string, opts platform.Options) error
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences, logger *log.Logger) *Notifier {
	cloned := Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))}
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), logger: logger, send: platform.Notify}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Pick announces a completed pick with its angle in degrees.
func (n *Notifier) Pick(angle float64) {
	n.dispatch(EventPick, fmt.Sprintf("%.2f°", angle), platform.Options{})
}

// LoadFailure announces that path could not be loaded.
func (n *Notifier) LoadFailure(path string, err error) {
	detail := strings.TrimSpace(path)
	if detail == "" {
		detail = "image"
	}
	if err != nil {
		detail = fmt.Sprintf("%s: %v", detail, err)
	}
	n.dispatch(EventLoadFailure, detail, platform.Options{})
}

// Copy announces a clipboard copy, previewing img when given.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "frame"
	}
	opts := platform.Options{}
	if img != nil {
		if path, cleanup, err := n.createPreview(img); err != nil {
			n.logger.Warn("notification preview", "err", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, detail, opts)
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		n.logger.Warn("notification failed", "event", string(event), "err", err)
	}
}

func (n *Notifier) createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "alignview-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			n.logger.Warn("remove preview", "err", err)
		}
	}
	return path, cleanup, nil
}
