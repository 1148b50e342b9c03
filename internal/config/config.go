package config

import (
	"fmt"
)

// Config is the root configuration for verdant.
//
// Field validity is structural only: value domains (compression levels,
// output formats, model profiles) are checked where the values are parsed
// into their domain types.
type Config struct {
	Output      string            `koanf:"output"`
	Compression CompressionConfig `koanf:"compression"`
	Scan        ScanConfig        `koanf:"scan"`
	Logging     LoggingConfig     `koanf:"logging"`
	Telemetry   TelemetryConfig   `koanf:"telemetry"`
}

// CompressionConfig controls the compression pipeline.
type CompressionConfig struct {
	Level         string `koanf:"level"`
	Format        string `koanf:"format"`
	Profile       string `koanf:"profile"`
	StripEmoji    bool   `koanf:"strip_emoji"`
	Chronological bool   `koanf:"chronological"`
	Chunk         bool   `koanf:"chunk"`
	MaxLines      int    `koanf:"max_lines"`
	Dictionary    string `koanf:"dictionary"`
	Estimator     string `koanf:"estimator"`
}

// ScanConfig controls document discovery.
type ScanConfig struct {
	Include       []string `koanf:"include"`
	Exclude       []string `koanf:"exclude"`
	MaxFileSizeKB int      `koanf:"max_file_size_kb"`
	IgnoreFiles   []string `koanf:"ignore_files"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetryConfig controls OTLP export.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
	Insecure    bool   `koanf:"insecure"`
}

// Validate checks structural configuration constraints.
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output prefix cannot be empty")
	}
	if c.Compression.MaxLines <= 0 {
		return fmt.Errorf("compression.max_lines must be positive, got %d", c.Compression.MaxLines)
	}
	if c.Scan.MaxFileSizeKB <= 0 {
		return fmt.Errorf("scan.max_file_size_kb must be positive, got %d", c.Scan.MaxFileSizeKB)
	}
	if len(c.Scan.Include) == 0 {
		return fmt.Errorf("scan.include cannot be empty")
	}
	if c.Compression.Estimator != "heuristic" && c.Compression.Estimator != "tiktoken" {
		return fmt.Errorf("compression.estimator must be 'heuristic' or 'tiktoken', got %q", c.Compression.Estimator)
	}
	return nil
}
