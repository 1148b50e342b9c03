package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		same bool
	}{
		{
			name: "identical text matches",
			a:    "shared paragraph about setup",
			b:    "shared paragraph about setup",
			same: true,
		},
		{
			name: "surrounding whitespace is ignored",
			a:    "  shared paragraph\t\n",
			b:    "shared paragraph",
			same: true,
		},
		{
			name: "interior whitespace is significant",
			a:    "shared  paragraph",
			b:    "shared paragraph",
			same: false,
		},
		{
			name: "different text differs",
			a:    "first paragraph",
			b:    "second paragraph",
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := Fingerprint(tt.a)
			fb := Fingerprint(tt.b)
			assert.Len(t, fa, 32)
			assert.Len(t, fb, 32)
			if tt.same {
				assert.Equal(t, fa, fb)
			} else {
				assert.NotEqual(t, fa, fb)
			}
		})
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	text := "the same input always hashes the same way"
	assert.Equal(t, Fingerprint(text), Fingerprint(text))
}
