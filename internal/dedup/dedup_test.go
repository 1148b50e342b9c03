package dedup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/verdant/internal/document"
)

func para(doc int, lines ...string) document.Unit {
	return document.Unit{Kind: document.UnitParagraph, Doc: doc, Lines: lines}
}

func TestDetector_KeepsFirstOccurrence(t *testing.T) {
	units := []document.Unit{
		para(0, "install the cli"),
		para(0, "unique paragraph"),
		para(1, "install the cli"),
		para(2, "install the cli"),
	}
	d := NewDetector(nil)
	out := d.Fold(units)

	require.Len(t, out, 2)
	assert.Equal(t, 0, out[0].Doc)
	assert.Equal(t, "install the cli", out[0].Text())
	assert.Equal(t, "unique paragraph", out[1].Text())
	assert.Equal(t, 2, d.Removed())
}

func TestDetector_WhitespaceInsensitive(t *testing.T) {
	units := []document.Unit{
		para(0, "  run make test  "),
		para(1, "run make test"),
	}
	out := NewDetector(nil).Fold(units)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Doc)
}

func TestDetector_HeadingsAndFencesExempt(t *testing.T) {
	units := []document.Unit{
		{Kind: document.UnitHeading, Doc: 0, Lines: []string{"H2:Usage"}},
		{Kind: document.UnitHeading, Doc: 1, Lines: []string{"H2:Usage"}},
		{Kind: document.UnitFence, Doc: 0, Lines: []string{"~~sh", "make build", "~~"}},
		{Kind: document.UnitFence, Doc: 1, Lines: []string{"~~sh", "make build", "~~"}},
	}
	d := NewDetector(nil)
	out := d.Fold(units)
	assert.Equal(t, units, out)
	assert.Zero(t, d.Removed())
}

func TestDetector_FoldAcrossCalls(t *testing.T) {
	d := NewDetector(nil)
	first := d.Fold([]document.Unit{para(0, "shared setup steps")})
	second := d.Fold([]document.Unit{para(1, "shared setup steps")})
	assert.Len(t, first, 1)
	assert.Empty(t, second)
	assert.Equal(t, 1, d.Removed())
}

func TestDetector_Idempotent(t *testing.T) {
	units := []document.Unit{
		para(0, "alpha"),
		para(0, "beta"),
		para(1, "alpha"),
	}
	once := NewDetector(nil).Fold(units)
	twice := NewDetector(nil).Fold(once)
	assert.Equal(t, once, twice)
}

func TestDetector_CustomFingerprinter(t *testing.T) {
	lower := func(text string) string {
		return strings.ToLower(strings.TrimSpace(text))
	}
	units := []document.Unit{
		para(0, "Install The CLI"),
		para(1, "install the cli"),
	}
	out := NewDetector(lower).Fold(units)
	require.Len(t, out, 1)
	assert.Equal(t, "Install The CLI", out[0].Text())
}
