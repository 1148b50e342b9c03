// Package pipeline orchestrates a full compression run: scan, normalize,
// condense structure, deduplicate, compress lexically, chunk, render.
package pipeline

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/fyrsmithlabs/verdant/internal/chunker"
	"github.com/fyrsmithlabs/verdant/internal/compress"
	"github.com/fyrsmithlabs/verdant/internal/dictionary"
	"github.com/fyrsmithlabs/verdant/internal/logging"
	"github.com/fyrsmithlabs/verdant/internal/profile"
	"github.com/fyrsmithlabs/verdant/internal/render"
	"github.com/fyrsmithlabs/verdant/internal/scan"
	"github.com/fyrsmithlabs/verdant/internal/stats"
	"github.com/fyrsmithlabs/verdant/internal/tokens"
)

const tracerName = "github.com/fyrsmithlabs/verdant/internal/pipeline"
const meterName = "pipeline"

// ErrEmptyDocumentSet is returned when the scan finds no matching documents.
var ErrEmptyDocumentSet = errors.New("no markdown documents found")

// Config holds the resolved settings for one compression run.
type Config struct {
	Level         compress.Level
	Format        render.Format
	Profile       profile.Preferences
	StripEmoji    bool
	Chronological bool
	Chunk         bool
	MaxLines      int

	// Output is the file name prefix, optionally with a directory part.
	Output string

	Dictionary *dictionary.Table
	Estimator  tokens.Estimator
}

// RenderedChunk is one output file produced by a run.
type RenderedChunk struct {
	Name    string
	Content string
	Lines   int
	Tokens  int
}

// Result is the outcome of a successful run. Chunks are in output
// order; writing them to disk is the caller's job.
type Result struct {
	RunID  string
	Chunks []RenderedChunk
	Stats  *stats.Stats
}

// Service runs the compression pipeline.
type Service struct {
	config  Config
	scanner *scan.Scanner
	logger  *logging.Logger

	tracer trace.Tracer
	meter  metric.Meter

	// Metrics
	runsTotal         metric.Int64Counter
	runDuration       metric.Float64Histogram
	compressionRatio  metric.Float64Histogram
	duplicatesRemoved metric.Int64Counter
	runErrors         metric.Int64Counter
}

// NewService creates a pipeline service. Zero-value config fields fall
// back to defaults: heuristic estimator, builtin dictionary, claude
// profile, default chunk size.
func NewService(cfg Config, scanner *scan.Scanner, logger *logging.Logger) (*Service, error) {
	if scanner == nil {
		return nil, fmt.Errorf("scanner is required")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.Estimator == nil {
		cfg.Estimator = tokens.NewHeuristic()
	}
	if cfg.Dictionary == nil {
		cfg.Dictionary = dictionary.Default()
	}
	if cfg.Profile.Name == "" {
		cfg.Profile = profile.Default()
	}
	if cfg.MaxLines <= 0 {
		cfg.MaxLines = chunker.DefaultMaxLines
	}
	if cfg.Output == "" {
		return nil, fmt.Errorf("output prefix is required")
	}

	s := &Service{
		config:  cfg,
		scanner: scanner,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
		meter:   otel.Meter(meterName),
	}

	if err := s.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return s, nil
}

// initMetrics initializes OpenTelemetry metrics
func (s *Service) initMetrics() error {
	var err error

	s.runsTotal, err = s.meter.Int64Counter(
		"pipeline.runs_total",
		metric.WithDescription("Total number of compression runs"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create runs counter: %w", err)
	}

	s.runDuration, err = s.meter.Float64Histogram(
		"pipeline.run_duration_seconds",
		metric.WithDescription("Time spent on compression runs"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return fmt.Errorf("failed to create run duration histogram: %w", err)
	}

	s.compressionRatio, err = s.meter.Float64Histogram(
		"pipeline.compression_ratio",
		metric.WithDescription("Compression ratios achieved"),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(1.0, 1.5, 2.0, 3.0, 5.0, 10.0, 20.0),
	)
	if err != nil {
		return fmt.Errorf("failed to create compression ratio histogram: %w", err)
	}

	s.duplicatesRemoved, err = s.meter.Int64Counter(
		"pipeline.duplicates_removed_total",
		metric.WithDescription("Total number of duplicate paragraphs removed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create duplicates counter: %w", err)
	}

	s.runErrors, err = s.meter.Int64Counter(
		"pipeline.errors_total",
		metric.WithDescription("Total number of failed compression runs"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create errors counter: %w", err)
	}

	return nil
}

// Config returns the resolved run configuration.
func (s *Service) Config() Config {
	return s.config
}
