// Package profile defines per-model rendering preferences.
//
// A profile never changes document content. It only selects how the
// renderer marks sections, whether navigation markers are kept, and how
// code lines are joined in the dense format.
package profile

import (
	"sort"
)

// Preferences describe how output is shaped for one target model.
type Preferences struct {
	// Name is the canonical profile name.
	Name string

	// SectionMarker is the heading prefix: "H" yields H2:, "SECTION_L"
	// yields SECTION_L2:.
	SectionMarker string

	// ContextMarkers keeps per-document separators and chunk trailers.
	ContextMarkers bool

	// CodeJoin separates statements when a fence body is flattened onto
	// a single dense line.
	CodeJoin string

	// CodeCentric emits code lines before prose in dense records.
	CodeCentric bool

	// Note is the advisory header line describing the tuning.
	Note string
}

// profiles is the closed set of supported targets.
var profiles = map[string]Preferences{
	"claude": {
		Name:           "claude",
		SectionMarker:  "H",
		ContextMarkers: true,
		CodeJoin:       "|",
		CodeCentric:    false,
		Note:           "Structured data with technical notation",
	},
	"gpt": {
		Name:           "gpt",
		SectionMarker:  "SECTION_L",
		ContextMarkers: true,
		CodeJoin:       "|",
		CodeCentric:    false,
		Note:           "Consistent formatting with explicit context",
	},
	"copilot": {
		Name:           "copilot",
		SectionMarker:  "H",
		ContextMarkers: false,
		CodeJoin:       " | ",
		CodeCentric:    true,
		Note:           "Code-focused with file-type hints",
	},
}

// Lookup returns the preferences for a profile name.
func Lookup(name string) (Preferences, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Default returns the claude profile.
func Default() Preferences {
	return profiles["claude"]
}

// Names returns all known profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
