//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package display

import "fmt"

// List is not supported on this platform.
func List() ([]Monitor, error) {
	return nil, fmt.Errorf("monitor listing is not supported on this platform")
}

// Wayland always reports false off unix.
func Wayland() bool { return false }
