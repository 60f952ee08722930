//go:build linux || freebsd || openbsd || netbsd || dragonfly

package display

import "testing"

func TestWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	t.Setenv("WAYLAND_DISPLAY", "")
	if !Wayland() {
		t.Fatalf("expected wayland session when XDG_SESSION_TYPE=wayland")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	if !Wayland() {
		t.Fatalf("expected wayland session when WAYLAND_DISPLAY is set")
	}

	t.Setenv("WAYLAND_DISPLAY", "")
	if Wayland() {
		t.Fatalf("did not expect wayland session when indicators are absent")
	}
}
