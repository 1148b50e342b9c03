package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/verdant/internal/chunker"
	"github.com/fyrsmithlabs/verdant/internal/compress"
	"github.com/fyrsmithlabs/verdant/internal/dedup"
	"github.com/fyrsmithlabs/verdant/internal/document"
	"github.com/fyrsmithlabs/verdant/internal/logging"
	"github.com/fyrsmithlabs/verdant/internal/output"
	"github.com/fyrsmithlabs/verdant/internal/render"
	"github.com/fyrsmithlabs/verdant/internal/stats"
)

// Run executes one full compression run over the tree rooted at root.
// Every run gets a fresh run ID carried through logs and spans.
func (s *Service) Run(ctx context.Context, root string) (*Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)

	ctx, span := s.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("root", root),
			attribute.String("level", s.config.Level.String()),
			attribute.String("format", s.config.Format.String()),
			attribute.String("profile", s.config.Profile.Name),
		),
	)
	defer span.End()

	start := time.Now()

	result, err := s.run(ctx, root, runID)
	if err != nil {
		span.RecordError(err)
		errorType := "run_failed"
		if errors.Is(err, ErrEmptyDocumentSet) {
			errorType = "empty_corpus"
		}
		s.runErrors.Add(ctx, 1,
			metric.WithAttributes(attribute.String("error_type", errorType)))
		return nil, err
	}

	st := result.Stats
	levelAttr := attribute.String("level", s.config.Level.String())
	formatAttr := attribute.String("format", s.config.Format.String())

	s.runsTotal.Add(ctx, 1, metric.WithAttributes(levelAttr, formatAttr))
	s.runDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(levelAttr, formatAttr))
	s.compressionRatio.Record(ctx, st.Ratio(),
		metric.WithAttributes(levelAttr, formatAttr))
	if st.DuplicatesRemoved > 0 {
		s.duplicatesRemoved.Add(ctx, int64(st.DuplicatesRemoved))
	}

	span.SetAttributes(
		attribute.Int("files", st.Files),
		attribute.Int("chunks", st.Chunks),
		attribute.Int("duplicates_removed", st.DuplicatesRemoved),
		attribute.Float64("saved_percent", st.SavedPercent()),
	)

	s.logger.Info(ctx, "compression run complete",
		zap.Int("files", st.Files),
		zap.Int("chunks", st.Chunks),
		zap.Int("duplicates_removed", st.DuplicatesRemoved),
		zap.Float64("saved_percent", st.SavedPercent()),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

func (s *Service) run(ctx context.Context, root, runID string) (*Result, error) {
	st := &stats.Stats{}

	docs, err := s.scanner.Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrEmptyDocumentSet, root)
	}
	st.Files = len(docs)

	normalizer := compress.NewNormalizer(s.config.StripEmoji)
	structure := compress.NewStructureCompressor()
	lexical := compress.NewLexicalCompressor(s.config.Level, s.config.Dictionary)
	detector := dedup.NewDetector(nil)

	var units []document.Unit
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc := &docs[i]
		st.OriginalChars += len(doc.Raw)
		st.OriginalLines += countLines(doc.Raw)
		st.TokensBefore += s.config.Estimator.Estimate(doc.Raw)

		text, removed := normalizer.Normalize(doc.Raw)
		st.EmojiRemoved += removed

		condensed, warnings := structure.Apply(text)
		for _, w := range warnings {
			st.AddWarning("structure", doc.Path, w)
			s.logger.Warn(ctx, "structural integrity warning",
				zap.String("path", doc.Path),
				zap.String("warning", w))
		}

		docUnits := document.Segment(condensed, i)
		if s.config.Level.AtLeast(compress.LevelMedium) {
			docUnits = detector.Fold(docUnits)
		}
		docUnits = lexical.Apply(docUnits)
		units = append(units, docUnits...)
	}
	st.DuplicatesRemoved = detector.Removed()

	var chunks []*chunker.Chunk
	if s.config.Chunk {
		chunks = chunker.New(s.config.MaxLines).Split(units)
	}
	if len(chunks) == 0 {
		chunks = []*chunker.Chunk{chunker.Single(units)}
	}
	st.Chunks = len(chunks)

	// A run that fits in one chunk produces a plain single file with no
	// navigation headers, even when chunking was requested.
	chunked := s.config.Chunk && len(chunks) > 1

	var compressed strings.Builder
	for _, u := range units {
		compressed.WriteString(u.Text())
		compressed.WriteByte('\n')
	}
	st.TokensAfter = s.config.Estimator.Estimate(compressed.String())

	renderer, err := render.New(s.config.Format, render.Context{
		Docs:          docs,
		Prefs:         s.config.Profile,
		Level:         s.config.Level,
		Dictionary:    lexical.Used(),
		Estimator:     s.config.Estimator,
		GeneratedAt:   time.Now().UTC(),
		Chunked:       chunked,
		TokenEstimate: st.TokensAfter,
		SavedPercent:  st.TokenSavedPercent(),
	})
	if err != nil {
		return nil, err
	}

	ext := s.config.Format.Extension()
	result := &Result{RunID: runID, Stats: st}
	for i, ch := range chunks {
		name := output.SingleName(s.config.Output, ext)
		if chunked {
			name = output.ChunkName(s.config.Output, ch.Index, ext)
		}
		next := ""
		if i+1 < len(chunks) {
			next = filepath.Base(output.ChunkName(s.config.Output, chunks[i+1].Index, ext))
		}

		content, err := renderer.RenderChunk(ch, next)
		if err != nil {
			return nil, fmt.Errorf("failed to render chunk %d: %w", ch.Index, err)
		}

		lines := strings.Count(content, "\n")
		st.CompressedChars += len(content)
		st.CompressedLines += lines
		result.Chunks = append(result.Chunks, RenderedChunk{
			Name:    name,
			Content: content,
			Lines:   lines,
			Tokens:  s.config.Estimator.Estimate(content),
		})
	}

	return result, nil
}

// countLines counts newline-separated lines in raw text.
func countLines(raw string) int {
	if raw == "" {
		return 0
	}
	return strings.Count(raw, "\n") + 1
}
