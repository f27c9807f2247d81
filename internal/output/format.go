package output

import (
	"fmt"
	"strings"
)

// Format selects how results are rendered.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// Formats lists the supported formats as flag values.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatText)}
}

// ParseFormat parses a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, f) {
			return Format(f), nil
		}
	}
	return "", fmt.Errorf("invalid output format %q: must be one of %s", s, strings.Join(Formats(), ", "))
}
