package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/fyrsmithlabs/verdant/internal/chunker"
	"github.com/fyrsmithlabs/verdant/internal/document"
)

// denseRenderer emits the VRD wire format. Every chunk is self
// contained: the header carries corpus metadata and navigation, the
// DICT line lists exactly the abbreviation codes the chunk body uses,
// and each document collapses into one record line plus typed content
// lines (H: heading, C: prose, X: code).
type denseRenderer struct {
	rc Context
}

func (r *denseRenderer) RenderChunk(ch *chunker.Chunk, next string) (string, error) {
	var b strings.Builder

	header := fmt.Sprintf("VRD1.0|TARGET:%s|MODE:%s|CHUNKS:%d/%d",
		strings.ToUpper(r.rc.Prefs.Name), strings.ToUpper(r.rc.Level.String()),
		ch.Index, ch.Total)
	if next != "" {
		header += "|NEXT:" + next
	}
	b.WriteString(header)
	b.WriteString("\n")

	fmt.Fprintf(&b, "META:{files:%d,tokens:%d,compressed:%.1f%%,generated:%s}\n",
		len(r.rc.Docs), r.rc.TokenEstimate, r.rc.SavedPercent,
		r.rc.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"))

	b.WriteString(r.dictLine(ch))
	b.WriteString("\n---\n")

	for gi, group := range groupByDoc(ch.Units) {
		if gi > 0 {
			b.WriteString("|\n")
		}
		doc := r.rc.Docs[group.doc]
		b.WriteString(docRecord(doc))
		b.WriteString("\n")
		r.writeGroupBody(&b, group.units)
	}
	return b.String(), nil
}

// writeGroupBody flattens one document's units into typed record lines:
// one H: line naming every heading, one C: line carrying all prose, one
// X: line per fence. Code-centric profiles put code before prose.
func (r *denseRenderer) writeGroupBody(b *strings.Builder, units []document.Unit) {
	var headings, proseLines, code []string
	for _, u := range units {
		switch u.Kind {
		case document.UnitHeading:
			headings = append(headings, headingText(u.Lines[0]))
		case document.UnitFence:
			code = append(code, fenceRecord(u, r.rc.Prefs.CodeJoin))
		default:
			proseLines = append(proseLines, u.Lines...)
		}
	}

	if len(headings) > 0 {
		b.WriteString("H:" + strings.Join(headings, ",") + "\n")
	}
	prose := ""
	if len(proseLines) > 0 {
		prose = "C:" + strings.Join(proseLines, " ") + "\n"
	}
	if r.rc.Prefs.CodeCentric {
		for _, x := range code {
			b.WriteString(x + "\n")
		}
		b.WriteString(prose)
		return
	}
	b.WriteString(prose)
	for _, x := range code {
		b.WriteString(x + "\n")
	}
}

// dictLine builds the DICT:{...} line for one chunk. Only codes that
// actually appear in the chunk body are listed, so every chunk can be
// decoded without the others.
func (r *denseRenderer) dictLine(ch *chunker.Chunk) string {
	if len(r.rc.Dictionary) == 0 {
		return "DICT:{}"
	}
	var body strings.Builder
	for _, u := range ch.Units {
		body.WriteString(u.Text())
		body.WriteByte('\n')
	}
	text := body.String()

	codes := make([]string, 0, len(r.rc.Dictionary))
	for code := range r.rc.Dictionary {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(code) + `\b`)
		if re.MatchString(text) {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = code + "=" + r.rc.Dictionary[code]
	}
	return "DICT:{" + strings.Join(parts, ",") + "}"
}

// docRecord builds the F: provenance line for one document. Size and
// line count describe the source file, not the compressed output, so a
// document split across chunks repeats the same figures.
func docRecord(doc document.Document) string {
	rec := fmt.Sprintf("F:%s|D:%s|S:%d|L:%d",
		doc.Path, doc.ModTime.UTC().Format("2006-01-02T15:04:05Z"),
		len(doc.Raw), rawLineCount(doc.Raw))
	if len(doc.Tags) > 0 {
		rec += "|T:" + strings.Join(doc.Tags, ",")
	}
	return rec
}

// rawLineCount counts source lines; a trailing newline does not open a
// final empty line.
func rawLineCount(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// fenceRecord collapses a fence unit into a single X: line. The
// language tag from the opening delimiter becomes X(lang):, and body
// lines are joined with the profile's code join string.
func fenceRecord(u document.Unit, join string) string {
	body := u.Lines
	lang := ""
	if len(body) > 0 && strings.HasPrefix(strings.TrimSpace(body[0]), "~~") {
		lang = strings.TrimPrefix(strings.TrimSpace(body[0]), "~~")
		body = body[1:]
	}
	if len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "~~" {
		body = body[:len(body)-1]
	}
	if lang != "" {
		return fmt.Sprintf("X(%s):%s", lang, strings.Join(body, join))
	}
	return "X:" + strings.Join(body, join)
}

// headingText strips the level marker from a condensed heading line.
// Dense output drops heading levels entirely.
func headingText(line string) string {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	return m[2]
}
