package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	table := Default()

	expansion, ok := table.Expansion("FN")
	require.True(t, ok)
	assert.Equal(t, "function", expansion)

	expansion, ok = table.Expansion("AUTHZ")
	require.True(t, ok)
	assert.Equal(t, "authorization", expansion)

	_, ok = table.Expansion("NOPE")
	assert.False(t, ok)
}

func TestDefault_CodesShorterThanExpansions(t *testing.T) {
	// Substituting a code for its expansion must never grow the text,
	// otherwise raising the level could increase output size.
	for _, e := range Default().Entries() {
		assert.Less(t, len(e.Code), len(e.Expansion), "code %s", e.Code)
	}
}

func TestEntries_Sorted(t *testing.T) {
	entries := Default().Entries()
	require.NotEmpty(t, entries)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Code, entries[i].Code)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, table *Table)
	}{
		{
			name: "user entries merge over builtin",
			content: "[abbreviations]\n" +
				"SVC = \"service\"\n" +
				"FN = \"fn expansion override\"\n",
			check: func(t *testing.T, table *Table) {
				expansion, ok := table.Expansion("SVC")
				require.True(t, ok)
				assert.Equal(t, "service", expansion)

				expansion, ok = table.Expansion("FN")
				require.True(t, ok)
				assert.Equal(t, "fn expansion override", expansion)
			},
		},
		{
			name: "lowercase codes are normalized",
			content: "[abbreviations]\n" +
				"svc = \"service\"\n",
			check: func(t *testing.T, table *Table) {
				_, ok := table.Expansion("SVC")
				assert.True(t, ok)
			},
		},
		{
			name:    "invalid toml",
			content: "[abbreviations\nbroken",
			wantErr: true,
		},
		{
			name: "empty expansion rejected",
			content: "[abbreviations]\n" +
				"SVC = \"\"\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dict.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			table, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, table)
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), table.Len())
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), table.Len())
}
