// Package stats aggregates per-run compression metrics and integrity
// warnings for reporting.
package stats

// Warning records a non-fatal integrity issue found while compressing.
// The run continues; warnings surface in the final report.
type Warning struct {
	Stage   string
	Path    string
	Message string
}

// Stats accumulates counters across one compression run. Character and
// line totals compare raw input against rendered output; token totals use
// the configured estimator.
type Stats struct {
	Files             int
	OriginalChars     int
	CompressedChars   int
	OriginalLines     int
	CompressedLines   int
	EmojiRemoved      int
	DuplicatesRemoved int
	Chunks            int
	TokensBefore      int
	TokensAfter       int
	Warnings          []Warning
}

// AddWarning appends an integrity warning.
func (s *Stats) AddWarning(stage, path, message string) {
	s.Warnings = append(s.Warnings, Warning{Stage: stage, Path: path, Message: message})
}

// SavedPercent reports the character reduction as a percentage of the
// original size. Zero-size input reports zero.
func (s *Stats) SavedPercent() float64 {
	return reduction(s.OriginalChars, s.CompressedChars)
}

// LineSavedPercent reports the line count reduction as a percentage.
func (s *Stats) LineSavedPercent() float64 {
	return reduction(s.OriginalLines, s.CompressedLines)
}

// TokenSavedPercent reports the estimated token reduction as a percentage.
func (s *Stats) TokenSavedPercent() float64 {
	return reduction(s.TokensBefore, s.TokensAfter)
}

// Ratio reports compressed size relative to original size, in characters.
// An empty input reports 1.
func (s *Stats) Ratio() float64 {
	if s.OriginalChars == 0 {
		return 1
	}
	return float64(s.CompressedChars) / float64(s.OriginalChars)
}

func reduction(original, compressed int) float64 {
	if original == 0 {
		return 0
	}
	return float64(original-compressed) / float64(original) * 100
}
