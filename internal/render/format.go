package render

import (
	"fmt"
	"strings"
)

// Format selects the output layout.
type Format string

const (
	// FormatClassic is the readable layout with per-document sections.
	FormatClassic Format = "classic"

	// FormatDense is the pipe-delimited VRD layout for minimal tokens.
	FormatDense Format = "dense"
)

// ParseFormat converts a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatClassic:
		return FormatClassic, nil
	case FormatDense:
		return FormatDense, nil
	}
	return "", fmt.Errorf("unknown output format %q (valid: classic, dense)", s)
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// Extension returns the output file extension without the dot.
func (f Format) Extension() string {
	if f == FormatDense {
		return "vrd"
	}
	return "md"
}

// Formats lists all output formats.
func Formats() []Format {
	return []Format{FormatClassic, FormatDense}
}
