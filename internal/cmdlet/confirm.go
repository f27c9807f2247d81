package cmdlet

import (
	"context"
	"fmt"
	"strings"
)

// Impact grades how disruptive an operation is.
type Impact int

// Impact levels, ordered.
const (
	ImpactNone Impact = iota
	ImpactLow
	ImpactMedium
	ImpactHigh
)

var impactNames = map[Impact]string{
	ImpactNone:   "none",
	ImpactLow:    "low",
	ImpactMedium: "medium",
	ImpactHigh:   "high",
}

func (i Impact) String() string {
	if s, ok := impactNames[i]; ok {
		return s
	}
	return fmt.Sprintf("Impact(%d)", int(i))
}

// ParseImpact parses none, low, medium or high.
func ParseImpact(s string) (Impact, error) {
	for impact, name := range impactNames {
		if strings.EqualFold(s, name) {
			return impact, nil
		}
	}
	return ImpactNone, fmt.Errorf("invalid confirmation level %q: must be none, low, medium or high", s)
}

// Prompt describes what the caller is asked to confirm.
type Prompt struct {
	Operation string
	Target    string
}

// Title is the question shown to the user.
func (p Prompt) Title() string {
	return "Are you sure you want to perform this action?"
}

// Text names the operation and the resource it acts on.
func (p Prompt) Text() string {
	if p.Target == "" {
		return fmt.Sprintf("Performing the operation %q.", p.Operation)
	}
	return fmt.Sprintf("Performing the operation %q on target %q.", p.Operation, p.Target)
}

// Confirmer asks the user to accept or decline a prompt.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, p Prompt) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) (bool, error) { return f(ctx, p) }

// Gate decides whether a mutating operation may proceed.
//
// Threshold is the lowest impact that requires confirmation; ImpactNone
// disables prompting altogether.
type Gate struct {
	Confirmer Confirmer
	Threshold Impact
}

// Allow reports whether the operation may proceed. Force, read-only
// operations and impacts below the threshold never prompt. A missing
// Confirmer declines.
func (g Gate) Allow(ctx context.Context, impact Impact, force bool, p Prompt) (bool, error) {
	if impact == ImpactNone || force {
		return true, nil
	}
	if g.Threshold == ImpactNone || impact < g.Threshold {
		return true, nil
	}
	if g.Confirmer == nil {
		return false, nil
	}
	return g.Confirmer.Confirm(ctx, p)
}
