package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantKinds []UnitKind
		wantLines []int
	}{
		{
			name:      "single paragraph",
			text:      "one line\nsecond line",
			wantKinds: []UnitKind{UnitParagraph},
			wantLines: []int{2},
		},
		{
			name:      "paragraphs split on blank lines",
			text:      "first\n\nsecond\n\n\nthird",
			wantKinds: []UnitKind{UnitParagraph, UnitParagraph, UnitParagraph},
			wantLines: []int{1, 1, 1},
		},
		{
			name:      "heading is its own unit",
			text:      "H2:Install\nstep one\nstep two",
			wantKinds: []UnitKind{UnitHeading, UnitParagraph},
			wantLines: []int{1, 2},
		},
		{
			name:      "fence kept atomic including blank interior lines",
			text:      "intro\n~~go\nfunc main() {\n\n}\n~~\noutro",
			wantKinds: []UnitKind{UnitParagraph, UnitFence, UnitParagraph},
			wantLines: []int{1, 5, 1},
		},
		{
			name:      "unclosed fence extends to end",
			text:      "before\n~~bash\necho hi\nno close here",
			wantKinds: []UnitKind{UnitParagraph, UnitFence},
			wantLines: []int{1, 3},
		},
		{
			name:      "list markers stay inside the paragraph unit",
			text:      "•first item\n••nested\n№1 numbered",
			wantKinds: []UnitKind{UnitParagraph},
			wantLines: []int{3},
		},
		{
			name:      "blank only input yields no units",
			text:      "\n\n\n",
			wantKinds: []UnitKind{},
			wantLines: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := Segment(tt.text, 0)
			require.Len(t, units, len(tt.wantKinds))
			for i, u := range units {
				assert.Equal(t, tt.wantKinds[i], u.Kind, "unit %d kind", i)
				assert.Equal(t, tt.wantLines[i], u.LineCount(), "unit %d lines", i)
			}
		})
	}
}

func TestSegment_FenceBalance(t *testing.T) {
	text := "H1:Title\npara\n\n~~python\nprint('a')\n~~\n\ntail"
	units := Segment(text, 3)

	for _, u := range units {
		assert.Equal(t, 3, u.Doc)
		if u.Kind != UnitFence {
			continue
		}
		delims := 0
		for _, line := range u.Lines {
			if strings.HasPrefix(strings.TrimSpace(line), "~~") {
				delims++
			}
		}
		assert.Equal(t, 2, delims, "fence unit must carry open and close delimiters")
	}
}

func TestSegment_PreservesOrder(t *testing.T) {
	text := "alpha\n\nH2:Beta\n\ngamma\n\n~~\ncode\n~~"
	units := Segment(text, 0)

	require.Len(t, units, 4)
	assert.Equal(t, "alpha", units[0].Text())
	assert.Equal(t, "H2:Beta", units[1].Text())
	assert.Equal(t, "gamma", units[2].Text())
	assert.Equal(t, "~~\ncode\n~~", units[3].Text())
}
