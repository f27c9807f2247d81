package cmdlet

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// ClientSource returns a client bound to a target.
type ClientSource[C any] interface {
	Client(ctx context.Context, t Target) (C, error)
}

// ClientFunc adapts a function to the ClientSource interface.
type ClientFunc[C any] func(ctx context.Context, t Target) (C, error)

// Client calls f.
func (f ClientFunc[C]) Client(ctx context.Context, t Target) (C, error) { return f(ctx, t) }

// Observer is notified about remote calls, typically to record metrics.
type Observer interface {
	ObserveCall(operation string, elapsed time.Duration, err error)
	ObservePage(operation string, items int)
}

type nopObserver struct{}

func (nopObserver) ObserveCall(string, time.Duration, error) {}
func (nopObserver) ObservePage(string, int)                  {}

// Env holds what the hosting environment supplies to every invocation.
// Target is read when a command runs, so it may be filled in after the
// commands are built.
type Env[C any] struct {
	Target   Target
	Clients  ClientSource[C]
	Gate     Gate
	Sink     Sink
	Logger   *log.Logger
	Observer Observer
	Resolve  ResolveFailure
}

func (e *Env[C]) logger() *log.Logger {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	return e.Logger
}

func (e *Env[C]) observer() Observer {
	if e.Observer == nil {
		return nopObserver{}
	}
	return e.Observer
}
