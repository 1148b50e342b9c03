// Package dedup removes repeated paragraph units across a document corpus.
//
// Detection runs on content fingerprints, so documents scanned in any order
// agree on which occurrence survives: the first one seen. Heading and fence
// units are never deduplicated: boilerplate headings like "Usage" repeat
// legitimately and code is kept verbatim.
package dedup

import (
	"github.com/fyrsmithlabs/verdant/internal/document"
)

// Detector tracks paragraph fingerprints across Fold calls. A single
// Detector fed documents one at a time removes duplicates corpus-wide.
type Detector struct {
	fingerprint document.Fingerprinter
	seen        map[string]struct{}
	removed     int
}

// NewDetector creates a Detector. A nil fingerprinter falls back to
// document.Fingerprint.
func NewDetector(fingerprint document.Fingerprinter) *Detector {
	if fingerprint == nil {
		fingerprint = document.Fingerprint
	}
	return &Detector{
		fingerprint: fingerprint,
		seen:        make(map[string]struct{}),
	}
}

// Fold returns units with repeated paragraphs removed, keeping the first
// occurrence. Heading and fence units pass through untouched.
func (d *Detector) Fold(units []document.Unit) []document.Unit {
	out := make([]document.Unit, 0, len(units))
	for _, u := range units {
		if u.Kind != document.UnitParagraph {
			out = append(out, u)
			continue
		}
		key := d.fingerprint(u.Text())
		if _, dup := d.seen[key]; dup {
			d.removed++
			continue
		}
		d.seen[key] = struct{}{}
		out = append(out, u)
	}
	return out
}

// Removed reports how many units Fold has dropped so far.
func (d *Detector) Removed() int {
	return d.removed
}
