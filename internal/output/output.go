// Package output names and writes compressed output files.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/verdant/internal/logging"
)

// SingleName returns the output file name for an unchunked run.
// The prefix may carry a directory part.
func SingleName(prefix, ext string) string {
	return prefix + "." + ext
}

// ChunkName returns the output file name for chunk n. A prefix whose
// base name already mentions "chunk" gets a plain numeric suffix so the
// name does not read chunk twice.
func ChunkName(prefix string, n int, ext string) string {
	base := strings.ToLower(filepath.Base(prefix))
	if strings.Contains(base, "chunk") {
		return fmt.Sprintf("%s_%d.%s", prefix, n, ext)
	}
	return fmt.Sprintf("%s_chunk_%d.%s", prefix, n, ext)
}

// Writer persists rendered chunks to disk.
type Writer struct {
	logger *logging.Logger
}

// NewWriter creates a Writer. A nil logger disables logging.
func NewWriter(logger *logging.Logger) *Writer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Writer{logger: logger}
}

// Write stores content at path, creating parent directories as needed.
func (w *Writer) Write(ctx context.Context, path, content string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	w.logger.Debug(ctx, "wrote output file",
		zap.String("path", path),
		zap.Int("bytes", len(content)))
	return nil
}
