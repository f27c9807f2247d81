package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorYellow = lipgloss.Color("#eab308")
)

// styles are bound to the renderer of their destination so color is only
// emitted to terminals.
type styles struct {
	key   lipgloss.Style
	index lipgloss.Style
	note  lipgloss.Style
}

func newStyles(out, notes io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		key:   r.NewStyle().Bold(true).Foreground(colorBlue),
		index: r.NewStyle().Foreground(colorDim),
		note:  lipgloss.NewRenderer(notes).NewStyle().Foreground(colorYellow),
	}
}
