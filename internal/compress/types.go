package compress

import "fmt"

// Level represents a compression aggressiveness level.
type Level string

const (
	// LevelLow only normalizes whitespace and strips emoji.
	LevelLow Level = "low"
	// LevelMedium adds structural notation, deduplication, and fluff removal.
	LevelMedium Level = "medium"
	// LevelHigh adds sentence-level compression.
	LevelHigh Level = "high"
	// LevelExtreme adds article removal, abbreviations, and symbolic notation.
	LevelExtreme Level = "extreme"
)

// levelRank orders levels for gating comparisons.
var levelRank = map[Level]int{
	LevelLow:     0,
	LevelMedium:  1,
	LevelHigh:    2,
	LevelExtreme: 3,
}

// ParseLevel parses a level string.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if _, ok := levelRank[l]; !ok {
		return "", fmt.Errorf("unknown compression level %q (valid: low, medium, high, extreme)", s)
	}
	return l, nil
}

// AtLeast reports whether l is at or above min.
func (l Level) AtLeast(min Level) bool {
	return levelRank[l] >= levelRank[min]
}

// String returns the level name.
func (l Level) String() string {
	return string(l)
}

// Levels returns all levels from least to most aggressive.
func Levels() []Level {
	return []Level{LevelLow, LevelMedium, LevelHigh, LevelExtreme}
}
