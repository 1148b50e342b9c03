package document

import (
	"regexp"
	"strings"
)

// UnitKind classifies an atomic content unit.
type UnitKind int

const (
	// UnitParagraph is a contiguous run of non-blank prose or list lines.
	UnitParagraph UnitKind = iota
	// UnitHeading is a single structural heading line.
	UnitHeading
	// UnitFence is a code fence including both delimiter lines.
	UnitFence
)

// String returns the kind name for logs and test output.
func (k UnitKind) String() string {
	switch k {
	case UnitParagraph:
		return "paragraph"
	case UnitHeading:
		return "heading"
	case UnitFence:
		return "fence"
	default:
		return "unknown"
	}
}

// Unit is the atomic pipeline unit. Later stages may reorder, drop, or
// rewrite whole units but never split one.
type Unit struct {
	Kind UnitKind

	// Doc indexes the owning document in the run's document slice.
	Doc int

	// Lines is the unit content without surrounding blank lines. For
	// fences it includes the open and close delimiter lines.
	Lines []string
}

// Text joins the unit lines with newlines.
func (u Unit) Text() string {
	return strings.Join(u.Lines, "\n")
}

// LineCount returns the number of lines in the unit.
func (u Unit) LineCount() int {
	return len(u.Lines)
}

var headingLineRe = regexp.MustCompile(`^H[1-6]:`)

// fenceDelim reports whether a line is a condensed fence delimiter.
// Open delimiters carry an optional language tag after "~~"; the close
// delimiter is "~~" alone. Indentation is allowed on both.
func fenceDelim(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "~~")
}

func fenceClose(line string) bool {
	return strings.TrimSpace(line) == "~~"
}

// Segment splits structure-compressed text into atomic units for document
// index doc. Blank lines separate units and are not retained. A fence that
// is never closed extends to the end of the text; the structural pass has
// already recorded a warning for that case.
func Segment(text string, doc int) []Unit {
	lines := strings.Split(text, "\n")
	units := make([]Unit, 0, 16)

	var para []string
	flushPara := func() {
		if len(para) > 0 {
			units = append(units, Unit{Kind: UnitParagraph, Doc: doc, Lines: para})
			para = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if strings.TrimSpace(line) == "" {
			flushPara()
			continue
		}

		if fenceDelim(line) {
			flushPara()
			fence := []string{line}
			j := i + 1
			for ; j < len(lines); j++ {
				fence = append(fence, lines[j])
				if fenceClose(lines[j]) {
					break
				}
			}
			units = append(units, Unit{Kind: UnitFence, Doc: doc, Lines: fence})
			i = j
			continue
		}

		if headingLineRe.MatchString(line) {
			flushPara()
			units = append(units, Unit{Kind: UnitHeading, Doc: doc, Lines: []string{line}})
			continue
		}

		para = append(para, line)
	}
	flushPara()

	return units
}
