package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "seconds", input: "15s", want: 15 * time.Second},
		{name: "compound", input: "1m30s", want: 90 * time.Second},
		{name: "milliseconds", input: "250ms", want: 250 * time.Millisecond},
		{name: "negative", input: "-5s", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration(90 * time.Second)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))
}

func TestDuration_MarshalJSON(t *testing.T) {
	d := Duration(5 * time.Second)
	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"5s"`, string(data))
}
