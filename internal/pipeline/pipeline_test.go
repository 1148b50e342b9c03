package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/fyrsmithlabs/verdant/internal/chunker"
	"github.com/fyrsmithlabs/verdant/internal/compress"
	"github.com/fyrsmithlabs/verdant/internal/logging"
	"github.com/fyrsmithlabs/verdant/internal/render"
	"github.com/fyrsmithlabs/verdant/internal/scan"
)

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	scanner, err := scan.NewScanner(scan.NewDefaultConfig(), nil)
	require.NoError(t, err)

	if cfg.Output == "" {
		cfg.Output = "compressed"
	}
	if cfg.Level == "" {
		cfg.Level = compress.LevelMedium
	}
	if cfg.Format == "" {
		cfg.Format = render.FormatClassic
	}

	svc, err := NewService(cfg, scanner, logging.Nop())
	require.NoError(t, err)
	return svc
}

func TestRunBasic(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"a.md": "# Alpha\n\nFirst paragraph.\n",
		"b.md": "# Beta\n\nSecond paragraph.\n",
	})
	svc := newTestService(t, Config{Chunk: true})

	res, err := svc.Run(context.Background(), root)
	require.NoError(t, err)

	assert.Len(t, res.RunID, 36)
	require.Len(t, res.Chunks, 1)

	ch := res.Chunks[0]
	assert.Equal(t, "compressed.md", ch.Name)
	assert.Contains(t, ch.Content, "TARGET:CLAUDE\n")
	assert.Contains(t, ch.Content, "F:a.md\nH1:Alpha\n")
	assert.Contains(t, ch.Content, "F:b.md\nH1:Beta\n")
	assert.NotContains(t, ch.Content, "CHUNK:")
	assert.Equal(t, strings.Count(ch.Content, "\n"), ch.Lines)

	st := res.Stats
	assert.Equal(t, 2, st.Files)
	assert.Equal(t, 1, st.Chunks)
	assert.Positive(t, st.TokensBefore)
	assert.Positive(t, st.TokensAfter)
	assert.Equal(t, len(ch.Content), st.CompressedChars)
}

func TestRunEmptyCorpus(t *testing.T) {
	root := writeCorpus(t, map[string]string{"notes.txt": "not markdown\n"})
	svc := newTestService(t, Config{})

	_, err := svc.Run(context.Background(), root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyDocumentSet)
}

func TestRunDeduplication(t *testing.T) {
	files := map[string]string{
		"a.md": "# A\n\nShared deployment checklist applies.\n\nAlpha only body.\n",
		"b.md": "# B\n\nShared deployment checklist applies.\n\nBeta only body.\n",
	}

	t.Run("medium removes repeats", func(t *testing.T) {
		root := writeCorpus(t, files)
		svc := newTestService(t, Config{Level: compress.LevelMedium})

		res, err := svc.Run(context.Background(), root)
		require.NoError(t, err)

		assert.Equal(t, 1, res.Stats.DuplicatesRemoved)
		assert.Equal(t, 1, strings.Count(res.Chunks[0].Content, "Shared deployment checklist applies."))
	})

	t.Run("low keeps repeats", func(t *testing.T) {
		root := writeCorpus(t, files)
		svc := newTestService(t, Config{Level: compress.LevelLow})

		res, err := svc.Run(context.Background(), root)
		require.NoError(t, err)

		assert.Zero(t, res.Stats.DuplicatesRemoved)
		assert.Equal(t, 2, strings.Count(res.Chunks[0].Content, "Shared deployment checklist applies."))
	})
}

func TestRunChunkingWithNext(t *testing.T) {
	var doc strings.Builder
	for i := 1; i <= 30; i++ {
		fmt.Fprintf(&doc, "Item %02d stands alone.\n\n", i)
	}
	root := writeCorpus(t, map[string]string{"list.md": doc.String()})

	svc := newTestService(t, Config{Chunk: true, MaxLines: 10})

	res, err := svc.Run(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, res.Chunks, 3)
	assert.Equal(t, 3, res.Stats.Chunks)
	assert.Equal(t, "compressed_chunk_1.md", res.Chunks[0].Name)
	assert.Equal(t, "compressed_chunk_3.md", res.Chunks[2].Name)

	first := strings.Split(res.Chunks[0].Content, "\n")[0]
	assert.Equal(t, "CHUNK:1/3 | NEXT:compressed_chunk_2.md", first)

	last := strings.Split(res.Chunks[2].Content, "\n")[0]
	assert.Equal(t, "CHUNK:3/3", last)
	assert.NotContains(t, res.Chunks[2].Content, "NEXT:")
}

func TestRunSingleChunkUsesPlainName(t *testing.T) {
	root := writeCorpus(t, map[string]string{"a.md": "# A\n\nShort.\n"})
	svc := newTestService(t, Config{Chunk: true, MaxLines: 100})

	res, err := svc.Run(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, res.Chunks, 1)
	assert.Equal(t, "compressed.md", res.Chunks[0].Name)
	assert.NotContains(t, res.Chunks[0].Content, "CHUNK:")
}

func TestRunDenseFormat(t *testing.T) {
	root := writeCorpus(t, map[string]string{"a.md": "# A\n\nBody text.\n"})
	svc := newTestService(t, Config{Format: render.FormatDense})

	res, err := svc.Run(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, res.Chunks, 1)
	assert.Equal(t, "compressed.vrd", res.Chunks[0].Name)
	first := strings.Split(res.Chunks[0].Content, "\n")[0]
	assert.Equal(t, "VRD1.0|TARGET:CLAUDE|MODE:MEDIUM|CHUNKS:1/1", first)
}

func TestRunUnclosedFenceWarning(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"bad.md": "# Bad\n\n```go\nfunc main() {}\n",
	})
	svc := newTestService(t, Config{})

	res, err := svc.Run(context.Background(), root)
	require.NoError(t, err)

	require.NotEmpty(t, res.Stats.Warnings)
	w := res.Stats.Warnings[0]
	assert.Equal(t, "structure", w.Stage)
	assert.Equal(t, "bad.md", w.Path)
	assert.Contains(t, w.Message, "unclosed code fence")
}

func TestRunRecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	root := writeCorpus(t, map[string]string{
		"a.md": "# A\n\nOne.\n",
		"b.md": "# B\n\nTwo.\n",
	})
	svc := newTestService(t, Config{})

	_, err := svc.Run(context.Background(), root)
	require.NoError(t, err)

	var span sdktrace.ReadOnlySpan
	for _, s := range sr.Ended() {
		if s.Name() == "pipeline.run" {
			span = s
		}
	}
	require.NotNil(t, span, "pipeline.run span not recorded")

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "medium", attrs["level"].AsString())
	assert.Equal(t, "classic", attrs["format"].AsString())
	assert.Equal(t, int64(2), attrs["files"].AsInt64())
}

func TestNewServiceValidation(t *testing.T) {
	scanner, err := scan.NewScanner(scan.NewDefaultConfig(), nil)
	require.NoError(t, err)

	_, err = NewService(Config{Output: "out"}, nil, nil)
	assert.Error(t, err)

	_, err = NewService(Config{}, scanner, nil)
	assert.Error(t, err)
}

func TestNewServiceDefaults(t *testing.T) {
	scanner, err := scan.NewScanner(scan.NewDefaultConfig(), nil)
	require.NoError(t, err)

	svc, err := NewService(Config{Output: "out"}, scanner, nil)
	require.NoError(t, err)

	cfg := svc.Config()
	assert.Equal(t, chunker.DefaultMaxLines, cfg.MaxLines)
	assert.Equal(t, "claude", cfg.Profile.Name)
	assert.NotNil(t, cfg.Estimator)
	assert.NotNil(t, cfg.Dictionary)
}
