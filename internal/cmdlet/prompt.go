package cmdlet

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// PromptConfirmer asks for confirmation on the terminal. When stdin is not
// a terminal it declines and logs how to proceed non-interactively.
type PromptConfirmer struct {
	In     *os.File
	Logger *log.Logger
}

// NewPromptConfirmer returns a confirmer reading from stdin.
func NewPromptConfirmer(logger *log.Logger) *PromptConfirmer {
	return &PromptConfirmer{In: os.Stdin, Logger: logger}
}

// Confirm shows a yes/no prompt.
func (c *PromptConfirmer) Confirm(ctx context.Context, p Prompt) (bool, error) {
	if !c.interactive() {
		if c.Logger != nil {
			c.Logger.Warn("confirmation required but stdin is not a terminal, pass --force to proceed",
				"operation", p.Operation, "target", p.Target)
		}
		return false, nil
	}

	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(p.Title()).
				Description(p.Text()).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (c *PromptConfirmer) interactive() bool {
	if c.In == nil {
		return false
	}
	fd := c.In.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
