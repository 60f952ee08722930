// Package control exposes the viewer operations over HTTP. Handlers never
// touch the viewer directly: each request is wrapped in a Command, posted to
// the window's event loop and answered through a reply channel.
package control

import (
	"context"
	"errors"

	"github.com/example/alignview/internal/settings"
	"github.com/example/alignview/internal/viewport"
)

// ErrClosed is returned when the event loop stops answering.
var ErrClosed = errors.New("control: viewer is not running")

// Target is the set of operations commands run against. *viewer.Viewer
// satisfies it.
type Target interface {
	LoadImage(path string, params *viewport.TransformParams) uint64
	Clear()
	SetStatus(s viewport.Status)
	SetTransform(t viewport.TransformParams) error
	ApplyTransform(t viewport.TransformParams) error
	ResetToStartScale()
	ApplySettings(resp settings.Response) error
	Snapshot() viewport.Snapshot
}

// Poster delivers events to the goroutine that owns the Target.
// screen.Window satisfies it.
type Poster interface {
	Send(event interface{})
}

type reply struct {
	val interface{}
	err error
}

// Command is one operation waiting to run on the event loop.
type Command struct {
	Name  string
	run   func(Target) (interface{}, error)
	reply chan reply
}

// NewCommand wraps fn so it can be posted to the event loop.
func NewCommand(name string, fn func(Target) (interface{}, error)) Command {
	return Command{Name: name, run: fn, reply: make(chan reply, 1)}
}

// Apply runs the command against t and answers the waiting caller. It must
// be called on the goroutine that owns t.
func (c Command) Apply(t Target) {
	v, err := c.run(t)
	c.reply <- reply{val: v, err: err}
}

// Do posts c through p and waits for its answer.
func Do(ctx context.Context, p Poster, c Command) (interface{}, error) {
	p.Send(c)
	select {
	case r := <-c.reply:
		return r.val, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrClosed
		}
		return nil, ctx.Err()
	}
}
