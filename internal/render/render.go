// Package render turns compressed units into output chunks.
//
// Two layouts are supported: classic, a readable markdown-like format
// with per-document sections, and dense, the pipe-delimited VRD format
// built for minimal token overhead. Both renderers work chunk by chunk
// so multi-chunk runs can stream files without holding the whole corpus
// output in memory.
package render

import (
	"fmt"
	"regexp"
	"time"

	"github.com/fyrsmithlabs/verdant/internal/chunker"
	"github.com/fyrsmithlabs/verdant/internal/compress"
	"github.com/fyrsmithlabs/verdant/internal/document"
	"github.com/fyrsmithlabs/verdant/internal/profile"
	"github.com/fyrsmithlabs/verdant/internal/tokens"
)

// headingRe matches a condensed heading line and captures level and text.
var headingRe = regexp.MustCompile(`^H([1-6]):(.*)$`)

// Context carries the corpus-level data every renderer needs. It is
// built once per run and shared across all chunks.
type Context struct {
	// Docs is the full document set, indexed by Unit.Doc.
	Docs []document.Document

	// Prefs shapes the output for the target model.
	Prefs profile.Preferences

	// Level is the compression level the corpus was processed at.
	Level compress.Level

	// Dictionary holds the abbreviation codes actually substituted
	// during lexical compression, keyed by code.
	Dictionary compress.Substitutions

	// Estimator computes token counts for chunk trailers.
	Estimator tokens.Estimator

	// GeneratedAt is the run timestamp stamped into dense headers.
	GeneratedAt time.Time

	// Chunked reports whether chunking was requested for this run.
	// Renderers emit chunk navigation headers only when it is set.
	Chunked bool

	// TokenEstimate is the estimated token count of the compressed corpus.
	TokenEstimate int

	// SavedPercent is the token reduction against the original corpus.
	SavedPercent float64
}

// Renderer produces output for one chunk at a time.
type Renderer interface {
	// RenderChunk renders a single chunk. next is the file name of the
	// following chunk, or empty for the last one.
	RenderChunk(ch *chunker.Chunk, next string) (string, error)
}

// New returns the renderer for the given format.
func New(format Format, rc Context) (Renderer, error) {
	if rc.Estimator == nil {
		rc.Estimator = tokens.NewHeuristic()
	}
	switch format {
	case FormatClassic:
		return &classicRenderer{rc: rc}, nil
	case FormatDense:
		return &denseRenderer{rc: rc}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// docGroup is a contiguous run of units from a single document.
type docGroup struct {
	doc   int
	units []document.Unit
}

// groupByDoc splits a chunk's units into per-document runs, preserving
// order. Units arrive sorted by document, so each document yields at
// most one group per chunk.
func groupByDoc(units []document.Unit) []docGroup {
	var groups []docGroup
	for _, u := range units {
		if len(groups) == 0 || groups[len(groups)-1].doc != u.Doc {
			groups = append(groups, docGroup{doc: u.Doc})
		}
		g := &groups[len(groups)-1]
		g.units = append(g.units, u)
	}
	return groups
}
