// Package display lists the monitors available to the viewer window.
package display

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ErrNoMonitors is returned when the display layout reports no usable monitor.
var ErrNoMonitors = errors.New("no monitors available")

// Monitor describes an individual monitor in the display layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// Size returns the monitor dimensions in pixels.
func (m Monitor) Size() (int, int) {
	return m.Rect.Dx(), m.Rect.Dy()
}

func (m Monitor) String() string {
	s := fmt.Sprintf("#%d %s %dx%d+%d+%d", m.Index, m.Name, m.Rect.Dx(), m.Rect.Dy(), m.Rect.Min.X, m.Rect.Min.Y)
	if m.Primary {
		s += " (primary)"
	}
	return s
}

// Find resolves a monitor selector against the provided list. The selector is
// empty, "primary", an index (optionally prefixed with #) or part of a name.
func Find(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, ErrNoMonitors
	}
	sel := strings.TrimSpace(selector)
	if sel == "" {
		return monitors[0], nil
	}
	lower := strings.ToLower(sel)
	if lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	lower = strings.TrimPrefix(lower, "#")
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}
