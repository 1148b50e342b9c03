package compress

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	headingRe     = regexp.MustCompile(`^(#{1,6})\s+(\S.*)$`)
	bareHeadingRe = regexp.MustCompile(`^#{1,6}\s*$`)
	deepHeadingRe = regexp.MustCompile(`^#{7,}(\s.*)?$`)
	checkboxRe    = regexp.MustCompile(`^(\s*)[-*+]\s+\[([ xX])\]\s*(.*)$`)
	bulletRe      = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	numberedRe    = regexp.MustCompile(`^(\s*)\d+\.\s+(.*)$`)
)

// StructureCompressor rewrites markdown structure into condensed notation:
// headings become H<n>: lines, list markers become repeated • and № glyphs,
// checkboxes become ☐ and ✔, and fence delimiters become ~~lang. Fence
// bodies are copied verbatim.
//
// Lines that look structural but are malformed (empty headings, headings
// deeper than six levels, unclosed fences) pass through unchanged and are
// reported as warnings.
type StructureCompressor struct{}

// NewStructureCompressor creates a StructureCompressor.
func NewStructureCompressor() *StructureCompressor {
	return &StructureCompressor{}
}

// Apply rewrites text into condensed notation and returns it with any
// integrity warnings. Blank runs adjacent to headings collapse to a single
// blank line.
func (s *StructureCompressor) Apply(text string) (string, []string) {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	var warnings []string
	blanks := 0
	lastHeading := false

	emit := func(nextHeading bool) {
		if blanks == 0 {
			return
		}
		if nextHeading || lastHeading {
			if len(out) > 0 {
				out = append(out, "")
			}
		} else {
			for i := 0; i < blanks; i++ {
				out = append(out, "")
			}
		}
		blanks = 0
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if body := strings.TrimLeft(line, " \t"); strings.HasPrefix(body, "```") {
			indent := line[:len(line)-len(body)]
			end := findFenceClose(lines, i+1)
			if end < 0 {
				warnings = append(warnings, fmt.Sprintf("unclosed code fence at line %d", i+1))
				emit(false)
				out = append(out, lines[i:]...)
				blanks = 0
				lastHeading = false
				break
			}
			emit(false)
			out = append(out, indent+"~~"+fenceLang(body))
			out = append(out, lines[i+1:end]...)
			out = append(out, indent+"~~")
			i = end
			lastHeading = false
			continue
		}

		if strings.TrimSpace(line) == "" {
			blanks++
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			emit(true)
			out = append(out, fmt.Sprintf("H%d:%s", len(m[1]), strings.TrimSpace(m[2])))
			lastHeading = true
			continue
		}
		if bareHeadingRe.MatchString(line) {
			warnings = append(warnings, fmt.Sprintf("empty heading at line %d", i+1))
			emit(false)
			out = append(out, line)
			lastHeading = false
			continue
		}
		if deepHeadingRe.MatchString(line) {
			warnings = append(warnings, fmt.Sprintf("heading deeper than six levels at line %d", i+1))
			emit(false)
			out = append(out, line)
			lastHeading = false
			continue
		}
		if m := checkboxRe.FindStringSubmatch(line); m != nil {
			marker := "☐"
			if m[2] != " " {
				marker = "✔"
			}
			emit(false)
			out = append(out, condensedItem(marker, m[1], m[3]))
			lastHeading = false
			continue
		}
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			emit(false)
			out = append(out, condensedItem("•", m[1], m[2]))
			lastHeading = false
			continue
		}
		if m := numberedRe.FindStringSubmatch(line); m != nil {
			emit(false)
			out = append(out, condensedItem("№", m[1], m[2]))
			lastHeading = false
			continue
		}

		emit(false)
		out = append(out, line)
		lastHeading = false
	}
	emit(false)

	return strings.Join(out, "\n"), warnings
}

// condensedItem renders a list item as the marker repeated once per nesting
// level, immediately followed by the item text.
func condensedItem(marker, indent, text string) string {
	return strings.Repeat(marker, indentDepth(indent)+1) + text
}

// indentDepth maps leading whitespace to a zero-based nesting level. Two
// spaces equal one level; tabs count as two spaces.
func indentDepth(indent string) int {
	width := 0
	for _, r := range indent {
		if r == '\t' {
			width += 2
		} else {
			width++
		}
	}
	return width / 2
}

// fenceLang extracts the language token from an opening fence line already
// stripped of indentation.
func fenceLang(body string) string {
	info := strings.TrimSpace(strings.TrimPrefix(body, "```"))
	if fields := strings.Fields(info); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// findFenceClose returns the index of the first closing fence delimiter at
// or after from, or -1 when the fence never closes.
func findFenceClose(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "```" {
			return j
		}
	}
	return -1
}
