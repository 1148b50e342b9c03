package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// loadIgnorePatterns reads gitignore-style files from the scan root and
// converts their entries to exclude patterns. Missing files are skipped.
// Patterns are re-read on every scan so edits take effect in watch mode.
func loadIgnorePatterns(root string, names []string) ([]string, error) {
	var patterns []string
	for _, name := range names {
		filePatterns, err := parseIgnoreFile(filepath.Join(root, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		patterns = append(patterns, filePatterns...)
	}
	return dedupPatterns(patterns), nil
}

func parseIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if p := ignoreLineToGlob(sc.Text()); p != "" {
			patterns = append(patterns, p)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// ignoreLineToGlob converts one gitignore line into a doublestar pattern.
// Comments, blank lines, and negation entries yield the empty string;
// negations are not supported.
func ignoreLineToGlob(line string) string {
	line = strings.TrimRight(line, " \t")
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
		return ""
	}

	// A leading slash anchors to the root, which relative matching
	// already does.
	p := strings.TrimPrefix(line, "/")

	// Trailing slash marks a directory; match everything below it.
	if strings.HasSuffix(p, "/") {
		p += "**"
	}

	// Bare names match at any depth.
	if !strings.Contains(p, "/") && !strings.HasPrefix(p, "*") {
		p = "**/" + p
	}

	// Extension-less entries are treated as directories, so
	// "node_modules" becomes "**/node_modules/**".
	if !strings.HasSuffix(p, "/**") && !strings.HasSuffix(p, "/*") && !strings.Contains(p, ".") {
		p += "/**"
	}

	return p
}

func dedupPatterns(patterns []string) []string {
	seen := make(map[string]struct{}, len(patterns))
	var out []string
	for _, p := range patterns {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
