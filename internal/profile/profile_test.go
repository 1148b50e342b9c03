package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name          string
		profile       string
		wantOK        bool
		wantMarker    string
		wantMarkers   bool
		wantCodeJoin  string
		wantCentric   bool
	}{
		{
			name:         "claude",
			profile:      "claude",
			wantOK:       true,
			wantMarker:   "H",
			wantMarkers:  true,
			wantCodeJoin: "|",
		},
		{
			name:         "gpt uses section markers",
			profile:      "gpt",
			wantOK:       true,
			wantMarker:   "SECTION_L",
			wantMarkers:  true,
			wantCodeJoin: "|",
		},
		{
			name:         "copilot is code centric",
			profile:      "copilot",
			wantOK:       true,
			wantMarker:   "H",
			wantMarkers:  false,
			wantCodeJoin: " | ",
			wantCentric:  true,
		},
		{
			name:    "unknown profile",
			profile: "llama",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Lookup(tt.profile)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.profile, p.Name)
			assert.Equal(t, tt.wantMarker, p.SectionMarker)
			assert.Equal(t, tt.wantMarkers, p.ContextMarkers)
			assert.Equal(t, tt.wantCodeJoin, p.CodeJoin)
			assert.Equal(t, tt.wantCentric, p.CodeCentric)
			assert.NotEmpty(t, p.Note)
		})
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"claude", "copilot", "gpt"}, Names())
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "claude", Default().Name)
}
