package render

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/verdant/internal/chunker"
	"github.com/fyrsmithlabs/verdant/internal/compress"
)

// classicRenderer emits the readable layout: a small header block, then
// each document under an F: line with its units separated by blanks.
type classicRenderer struct {
	rc Context
}

func (r *classicRenderer) RenderChunk(ch *chunker.Chunk, next string) (string, error) {
	var b strings.Builder

	if r.rc.Chunked {
		if next != "" {
			fmt.Fprintf(&b, "CHUNK:%d/%d | NEXT:%s\n", ch.Index, ch.Total, next)
		} else {
			fmt.Fprintf(&b, "CHUNK:%d/%d\n", ch.Index, ch.Total)
		}
	}
	fmt.Fprintf(&b, "TARGET:%s\n", strings.ToUpper(r.rc.Prefs.Name))
	if r.rc.Level == compress.LevelExtreme {
		b.WriteString("MODE:AI_OPTIMIZED\n")
	}
	if r.rc.Prefs.Note != "" {
		fmt.Fprintf(&b, "NOTE:%s\n", r.rc.Prefs.Note)
	}
	b.WriteString("---\n")

	for gi, group := range groupByDoc(ch.Units) {
		if gi > 0 {
			if r.rc.Prefs.ContextMarkers {
				b.WriteString("|\n")
			} else {
				b.WriteString("\n")
			}
		}
		doc := r.rc.Docs[group.doc]
		fmt.Fprintf(&b, "F:%s\n", doc.Path)
		for ui, u := range group.units {
			if ui > 0 {
				b.WriteString("\n")
			}
			for _, line := range u.Lines {
				b.WriteString(r.remark(line))
				b.WriteString("\n")
			}
		}
	}

	if r.rc.Chunked && r.rc.Prefs.ContextMarkers {
		body := b.String()
		fmt.Fprintf(&b, "---\nCHUNK_END | Lines:%d | Est.tokens:%d\n",
			ch.Lines, r.rc.Estimator.Estimate(body))
	}
	return b.String(), nil
}

// remark rewrites condensed heading markers to the profile's section
// marker. Profiles using the default H marker pass lines through.
func (r *classicRenderer) remark(line string) string {
	if r.rc.Prefs.SectionMarker == "H" {
		return line
	}
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	return r.rc.Prefs.SectionMarker + m[1] + ":" + m[2]
}
