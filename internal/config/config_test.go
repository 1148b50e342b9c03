package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Output: "compressed",
		Compression: CompressionConfig{
			Level:     "medium",
			Format:    "classic",
			Profile:   "claude",
			MaxLines:  800,
			Estimator: "heuristic",
		},
		Scan: ScanConfig{
			Include:       []string{"**/*.md"},
			MaxFileSizeKB: 4096,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "tiktoken estimator",
			mutate: func(c *Config) { c.Compression.Estimator = "tiktoken" },
		},
		{
			name:    "empty output",
			mutate:  func(c *Config) { c.Output = "" },
			wantErr: "output prefix",
		},
		{
			name:    "zero max lines",
			mutate:  func(c *Config) { c.Compression.MaxLines = 0 },
			wantErr: "max_lines",
		},
		{
			name:    "negative file size",
			mutate:  func(c *Config) { c.Scan.MaxFileSizeKB = -1 },
			wantErr: "max_file_size_kb",
		},
		{
			name:    "no include patterns",
			mutate:  func(c *Config) { c.Scan.Include = nil },
			wantErr: "scan.include",
		},
		{
			name:    "unknown estimator",
			mutate:  func(c *Config) { c.Compression.Estimator = "wordcount" },
			wantErr: "estimator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
