package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/verdant/internal/document"
	"github.com/fyrsmithlabs/verdant/internal/profile"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "classic", input: "classic", want: FormatClassic},
		{name: "dense", input: "dense", want: FormatDense},
		{name: "mixed case", input: "Dense", want: FormatDense},
		{name: "padded", input: "  classic  ", want: FormatClassic},
		{name: "unknown", input: "yaml", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, "md", FormatClassic.Extension())
	assert.Equal(t, "vrd", FormatDense.Extension())
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New(Format("xml"), Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestGroupByDoc(t *testing.T) {
	units := []document.Unit{
		unit(document.UnitHeading, 0, "H1:A"),
		unit(document.UnitParagraph, 0, "first"),
		unit(document.UnitHeading, 2, "H1:C"),
	}

	groups := groupByDoc(units)
	require.Len(t, groups, 2)
	assert.Equal(t, 0, groups[0].doc)
	assert.Len(t, groups[0].units, 2)
	assert.Equal(t, 2, groups[1].doc)
	assert.Len(t, groups[1].units, 1)
}

func TestGroupByDocEmpty(t *testing.T) {
	assert.Empty(t, groupByDoc(nil))
}

// unit builds a test unit without going through segmentation.
func unit(kind document.UnitKind, doc int, lines ...string) document.Unit {
	return document.Unit{Kind: kind, Doc: doc, Lines: lines}
}

// renderDocs is the shared two-document fixture for renderer tests.
// Raw carries the pre-compression source so dense provenance records
// have real sizes to report.
func renderDocs() []document.Document {
	return []document.Document{
		{
			Path:    "docs/api.md",
			Raw:     "# API Guide\n\nAuthentication flows use database sessions.\n\n```go\nfunc main() {}\n```\n",
			ModTime: time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
			Tags:    []string{"api", "auth"},
		},
		{
			Path:    "docs/cli.md",
			Raw:     "# CLI\n\n- build\n- test\n",
			ModTime: time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC),
		},
	}
}

// mustProfile fails the test if the named profile is unknown.
func mustProfile(t *testing.T, name string) profile.Preferences {
	t.Helper()
	p, ok := profile.Lookup(name)
	require.True(t, ok, "unknown profile %q", name)
	return p
}
