package compress

import (
	"strings"
)

// blankRunLimit is the minimum run length at which consecutive blank lines
// collapse into a single blank line.
const blankRunLimit = 3

// emojiRanges lists the Unicode blocks removed when emoji stripping is
// enabled. Text symbols outside these blocks survive unchanged.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	{0x1F680, 0x1F6FF}, // transport and map symbols
	{0x1F1E6, 0x1F1FF}, // regional indicators
	{0x2600, 0x26FF},   // misc symbols
	{0x2700, 0x27BF},   // dingbats
	{0x1F900, 0x1F9FF}, // supplemental symbols and pictographs
	{0x1FA70, 0x1FAFF}, // symbols and pictographs extended-A
}

// Normalizer cleans raw markdown before structural compression. It strips
// emoji, trims trailing whitespace, and collapses blank-line runs. Fence
// interiors pass through untouched.
type Normalizer struct {
	stripEmoji bool
}

// NewNormalizer creates a Normalizer. When stripEmoji is false, emoji are
// preserved and only whitespace normalization applies.
func NewNormalizer(stripEmoji bool) *Normalizer {
	return &Normalizer{stripEmoji: stripEmoji}
}

// Normalize returns the cleaned text and the number of emoji runes removed.
// It is idempotent: Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(text string) (string, int) {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	removed := 0
	blanks := 0
	inFence := false

	flush := func() {
		if blanks == 0 {
			return
		}
		if blanks >= blankRunLimit {
			out = append(out, "")
		} else {
			for i := 0; i < blanks; i++ {
				out = append(out, "")
			}
		}
		blanks = 0
	}

	for _, line := range lines {
		if inFence {
			out = append(out, line)
			if strings.TrimSpace(line) == "```" {
				inFence = false
			}
			continue
		}
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "```") {
			flush()
			out = append(out, strings.TrimRight(line, " \t"))
			inFence = true
			continue
		}
		if n.stripEmoji {
			var count int
			line, count = stripEmojiRunes(line)
			removed += count
		}
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n"), removed
}

func stripEmojiRunes(line string) (string, int) {
	removed := 0
	for _, r := range line {
		if isEmoji(r) {
			removed++
		}
	}
	if removed == 0 {
		return line, 0
	}
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		if !isEmoji(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), removed
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}
