// Package chunker packs a unit stream into line-bounded chunks.
//
// Units are atomic: a chunk boundary never falls inside a paragraph,
// heading, or fence. A single unit longer than the line limit becomes its
// own oversized chunk rather than being split.
package chunker

import (
	"github.com/fyrsmithlabs/verdant/internal/document"
)

// DefaultMaxLines is the chunk size used when none is configured.
const DefaultMaxLines = 800

// Chunk is a contiguous run of units rendered as one output file.
type Chunk struct {
	Index int // 1-based
	Total int
	Units []document.Unit
	Lines int
}

// Chunker splits unit streams by a maximum line count.
type Chunker struct {
	maxLines int
}

// New creates a Chunker. Non-positive limits fall back to DefaultMaxLines.
func New(maxLines int) *Chunker {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &Chunker{maxLines: maxLines}
}

// Split packs units first-fit into chunks of at most the configured line
// count, preserving unit order. Index and Total are filled on every chunk.
func (c *Chunker) Split(units []document.Unit) []*Chunk {
	var chunks []*Chunk
	cur := &Chunk{}
	flush := func() {
		if len(cur.Units) == 0 {
			return
		}
		chunks = append(chunks, cur)
		cur = &Chunk{}
	}
	for _, u := range units {
		n := u.LineCount()
		if cur.Lines > 0 && cur.Lines+n > c.maxLines {
			flush()
		}
		cur.Units = append(cur.Units, u)
		cur.Lines += n
	}
	flush()
	for i, ch := range chunks {
		ch.Index = i + 1
		ch.Total = len(chunks)
	}
	return chunks
}

// Single wraps all units into one chunk, used when chunking is disabled.
func Single(units []document.Unit) *Chunk {
	ch := &Chunk{Index: 1, Total: 1, Units: units}
	for _, u := range units {
		ch.Lines += u.LineCount()
	}
	return ch
}
