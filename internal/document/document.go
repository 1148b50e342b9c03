package document

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Document is one markdown source file. Immutable after scanning.
type Document struct {
	// Path is the file path relative to the scan root.
	Path string

	// Raw is the file content as read from disk.
	Raw string

	// ModTime is the file modification time, used for chronological
	// ordering and the dense per-document record.
	ModTime time.Time

	// Tags are content-derived topic tags (sorted, at most five).
	Tags []string
}

// Fingerprinter computes a content fingerprint for duplicate detection.
// Implementations must be deterministic: equal input yields equal output.
type Fingerprinter func(text string) string

// Fingerprint is the default fingerprinter: SHA-256 over the trimmed text,
// hex encoded and truncated to 32 characters. Collisions are not a practical
// concern at documentation-corpus scale.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:16])
}
