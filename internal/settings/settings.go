// Package settings fetches the saved image placement from the host
// application. Responses use the host's shape:
//
//	{"success": true, "data": {"image": {"scale": 1.2, "offset_x": 40, "offset_y": 10}}}
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsuccessful is returned for a response whose success flag is false.
	ErrUnsuccessful = errors.New("settings request unsuccessful")
	// ErrMalformed is returned when a response lacks a usable placement.
	ErrMalformed = errors.New("malformed settings response")
	// ErrOutOfRange is returned by Store for values the host rejects.
	ErrOutOfRange = errors.New("settings value out of range")
	// ErrNotFound is returned when the settings source has no entry.
	ErrNotFound = errors.New("settings not found")
)

// MaxScale is the largest scale the host accepts when saving.
const MaxScale = 3.0

// Placement is the saved scale and offsets.
type Placement struct {
	Scale   float64 `json:"scale" yaml:"scale"`
	OffsetX float64 `json:"offset_x" yaml:"offset_x"`
	OffsetY float64 `json:"offset_y" yaml:"offset_y"`
}

// Data is the payload of a response.
type Data struct {
	Image *Placement `json:"image,omitempty" yaml:"image,omitempty"`
}

// Response is the host's answer to a settings request.
type Response struct {
	Success bool   `json:"success" yaml:"success"`
	Data    *Data  `json:"data,omitempty" yaml:"data,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Bridge retrieves settings from the host.
type Bridge interface {
	Fetch(ctx context.Context) (Response, error)
}

// Params validates resp and returns its placement.
func Params(resp Response) (Placement, error) {
	if !resp.Success {
		if msg := strings.TrimSpace(resp.Error); msg != "" {
			return Placement{}, fmt.Errorf("%w: %s", ErrUnsuccessful, msg)
		}
		return Placement{}, ErrUnsuccessful
	}
	if resp.Data == nil || resp.Data.Image == nil {
		return Placement{}, fmt.Errorf("%w: missing data.image", ErrMalformed)
	}
	p := *resp.Data.Image
	if !(p.Scale > 0) {
		return Placement{}, fmt.Errorf("%w: scale %v", ErrMalformed, p.Scale)
	}
	return p, nil
}

// Succeeded wraps a placement in a successful response.
func Succeeded(p Placement) Response {
	return Response{Success: true, Data: &Data{Image: &p}}
}

// Failed builds an unsuccessful response carrying err's message.
func Failed(err error) Response {
	return Response{Success: false, Error: err.Error()}
}

// Nop is a Bridge for kiosks without a settings source. It always answers
// unsuccessfully.
type Nop struct{}

// Fetch implements Bridge.
func (Nop) Fetch(context.Context) (Response, error) {
	return Response{Error: "no settings source configured"}, nil
}

// Source selects a Bridge implementation.
type Source struct {
	Kind          string // none, file or redis
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
}

// Open builds the Bridge described by src.
func Open(src Source) (Bridge, error) {
	switch strings.ToLower(strings.TrimSpace(src.Kind)) {
	case "", "none":
		return Nop{}, nil
	case "file":
		if src.Path == "" {
			return nil, fmt.Errorf("settings: file source needs a path")
		}
		return NewFileBridge(src.Path), nil
	case "redis":
		if src.RedisAddr == "" {
			return nil, fmt.Errorf("settings: redis source needs an address")
		}
		return NewRedisBridge(src.RedisAddr, src.RedisPassword, src.RedisDB, src.RedisKey), nil
	}
	return nil, fmt.Errorf("settings: unknown source %q", src.Kind)
}
