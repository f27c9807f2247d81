package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"sigs.k8s.io/yaml"

	"github.com/imamik/ec2ctl/internal/cmdlet"
)

// Writer renders envelopes in one format. Failed envelopes are not
// written: the error is returned by the command and reported once by the
// caller.
type Writer struct {
	mu     sync.Mutex
	format Format
	out    io.Writer
	notes  io.Writer
	styles styles
	docs   int
}

var _ cmdlet.Sink = (*Writer)(nil)

// NewWriter returns a writer printing results to out and notes to notes.
func NewWriter(format Format, out, notes io.Writer) *Writer {
	return &Writer{
		format: format,
		out:    out,
		notes:  notes,
		styles: newStyles(out, notes),
	}
}

// Emit writes one envelope.
func (w *Writer) Emit(_ context.Context, e cmdlet.Envelope) error {
	if e.Failed() {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if e.Output != nil {
		if err := w.document(e.Output); err != nil {
			return err
		}
	}
	for _, n := range e.Notes {
		if _, err := fmt.Fprintf(w.notes, "%s %s\n", w.styles.note.Render(n.Name+":"), n.Value); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) document(v any) error {
	value, ok, err := normalize(v)
	if err != nil || !ok {
		return err
	}

	var data []byte
	switch w.format {
	case FormatYAML:
		data, err = yaml.Marshal(value)
		if w.docs > 0 {
			data = append([]byte("---\n"), data...)
		}
	case FormatText:
		var b strings.Builder
		w.text(&b, value, "", true)
		if b.Len() == 0 {
			return nil
		}
		if w.docs > 0 {
			data = []byte("\n")
		}
		data = append(data, b.String()...)
	default:
		data, err = json.MarshalIndent(value, "", "    ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to render %s output: %w", w.format, err)
	}

	w.docs++
	_, err = w.out.Write(data)
	return err
}

// text writes v as an indented key/value listing. Map keys are sorted.
func (w *Writer) text(b *strings.Builder, v any, indent string, top bool) {
	switch v := v.(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(v)) {
			child := v[k]
			key := w.styles.key.Render(k + ":")
			if isScalar(child) {
				fmt.Fprintf(b, "%s%s %s\n", indent, key, scalar(child))
				continue
			}
			fmt.Fprintf(b, "%s%s\n", indent, key)
			w.text(b, child, indent+"  ", false)
		}
	case []any:
		for i, item := range v {
			if isScalar(item) {
				if top {
					fmt.Fprintf(b, "%s\n", scalar(item))
				} else {
					fmt.Fprintf(b, "%s- %s\n", indent, scalar(item))
				}
				continue
			}
			fmt.Fprintf(b, "%s%s\n", indent, w.styles.index.Render(fmt.Sprintf("[%d]", i)))
			w.text(b, item, indent+"  ", false)
		}
	default:
		fmt.Fprintf(b, "%s%s\n", indent, scalar(v))
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	default:
		return true
	}
}

func scalar(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
