// Package scan discovers markdown documents under a root directory.
//
// Discovery order is deterministic: path order by default, modification
// time (oldest first) when chronological ordering is enabled. Version
// control and dependency directories are never descended into.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/verdant/internal/document"
	"github.com/fyrsmithlabs/verdant/internal/logging"
	"github.com/fyrsmithlabs/verdant/internal/tags"
)

var (
	// ErrNotDirectory is returned when the scan root is not a directory.
	ErrNotDirectory = errors.New("input path is not a directory")

	// ErrNotText is returned when a matched file is not valid UTF-8.
	ErrNotText = errors.New("file is not valid UTF-8 text")
)

// skipDirs are never descended into.
var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"vendor":       {},
}

// SkippedDir reports whether a directory name is excluded from discovery.
// The watch loop uses the same set so watched trees match scanned trees.
func SkippedDir(name string) bool {
	_, skip := skipDirs[name]
	return skip
}

// Config controls document discovery.
type Config struct {
	Include       []string
	Exclude       []string
	MaxFileSize   int64
	Chronological bool

	// IgnoreFiles are gitignore-style file names read from the scan root.
	// Their entries become additional exclude patterns.
	IgnoreFiles []string
}

// NewDefaultConfig returns scan defaults: all markdown files up to 4MiB,
// honoring .verdantignore and .gitignore at the root.
func NewDefaultConfig() *Config {
	return &Config{
		Include:     []string{"**/*.md"},
		MaxFileSize: 4 << 20,
		IgnoreFiles: []string{".verdantignore", ".gitignore"},
	}
}

// Validate checks patterns and limits.
func (c *Config) Validate() error {
	if len(c.Include) == 0 {
		return fmt.Errorf("at least one include pattern is required")
	}
	for _, p := range c.Include {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid include pattern %q", p)
		}
	}
	for _, p := range c.Exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.MaxFileSize)
	}
	return nil
}

// Scanner walks directory trees and loads matching documents.
type Scanner struct {
	config *Config
	logger *logging.Logger
	tags   *tags.Extractor
}

// NewScanner creates a Scanner. A nil logger discards diagnostics.
func NewScanner(cfg *Config, logger *logging.Logger) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan config: %w", err)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Scanner{
		config: cfg,
		logger: logger,
		tags:   tags.NewExtractor(nil),
	}, nil
}

// Scan walks root and returns matched documents with content, metadata,
// and extracted tags. Paths in the result are slash-separated and relative
// to root.
func (s *Scanner) Scan(ctx context.Context, root string) ([]document.Document, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("input path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	ignored, err := loadIgnorePatterns(root, s.config.IgnoreFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore files: %w", err)
	}

	var docs []document.Document
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if SkippedDir(d.Name()) && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !s.matches(rel, ignored) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}
		if fi.Size() > s.config.MaxFileSize {
			s.logger.Warn(ctx, "skipping oversized file",
				zap.String("path", rel),
				zap.Int64("bytes", fi.Size()),
				zap.Int64("limit", s.config.MaxFileSize))
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}
		if !utf8.Valid(raw) {
			return fmt.Errorf("%s: %w", rel, ErrNotText)
		}

		content := string(raw)
		docs = append(docs, document.Document{
			Path:    rel,
			Raw:     content,
			ModTime: fi.ModTime(),
			Tags:    s.tags.Extract(rel, content),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	if s.config.Chronological {
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].ModTime.Before(docs[j].ModTime)
		})
	} else {
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].Path < docs[j].Path
		})
	}

	s.logger.Debug(ctx, "scan complete",
		zap.String("root", root),
		zap.Int("documents", len(docs)))
	return docs, nil
}

// matches reports whether a relative slash path passes the include
// patterns and neither the configured nor the ignore-file excludes.
func (s *Scanner) matches(rel string, ignored []string) bool {
	included := false
	for _, p := range s.config.Include {
		if ok, _ := doublestar.Match(p, rel); ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, p := range s.config.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	for _, p := range ignored {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	return true
}
