package cmdlet

import (
	"context"
	"sync"
)

// Note is a named side-channel value attached to an output, such as the
// continuation token of a page.
type Note struct {
	Name  string
	Value string
}

// NoteNextToken names the continuation token note.
const NoteNextToken = "NextToken"

// Envelope carries the result of one remote call: either the projected
// output together with the raw response, or an error. Never both.
type Envelope struct {
	Output   any
	Response any
	Notes    []Note
	Err      error
}

// Success builds the success variant.
func Success(output, response any, notes ...Note) Envelope {
	return Envelope{Output: output, Response: response, Notes: notes}
}

// Failure builds the failure variant. It carries no output.
func Failure(err error) Envelope {
	return Envelope{Err: err}
}

// Failed reports whether the envelope holds an error.
func (e Envelope) Failed() bool { return e.Err != nil }

// Note returns the value of the named note.
func (e Envelope) Note(name string) (string, bool) {
	for _, n := range e.Notes {
		if n.Name == name {
			return n.Value, true
		}
	}
	return "", false
}

// Sink receives envelopes as they are produced, once per invocation or
// once per page.
type Sink interface {
	Emit(ctx context.Context, e Envelope) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, e Envelope) error

// Emit calls f.
func (f SinkFunc) Emit(ctx context.Context, e Envelope) error { return f(ctx, e) }

// Recorder is a Sink that keeps every envelope in memory.
type Recorder struct {
	mu        sync.Mutex
	envelopes []Envelope
}

// Emit records the envelope.
func (r *Recorder) Emit(_ context.Context, e Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envelopes = append(r.envelopes, e)
	return nil
}

// Envelopes returns a copy of everything recorded so far.
func (r *Recorder) Envelopes() []Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Envelope(nil), r.envelopes...)
}

// Outputs returns the outputs of the successful envelopes.
func (r *Recorder) Outputs() []any {
	var out []any
	for _, e := range r.Envelopes() {
		if !e.Failed() {
			out = append(out, e.Output)
		}
	}
	return out
}
