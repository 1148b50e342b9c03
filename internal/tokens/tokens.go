// Package tokens estimates LLM token counts for compression reporting.
//
// The default estimator is the 4-characters-per-token heuristic: fast,
// dependency free, and deterministic across platforms. A tiktoken-backed
// estimator is available for callers that want model-accurate counts.
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultCharsPerToken is the heuristic divisor for English prose.
const DefaultCharsPerToken = 4

// DefaultEncoding is the tiktoken encoding used when none is specified.
const DefaultEncoding = "cl100k_base"

// Estimator estimates the token count of a text.
type Estimator interface {
	// Estimate returns the estimated token count. Never negative.
	Estimate(text string) int
	// Name identifies the estimator in logs and reports.
	Name() string
}

// Heuristic estimates tokens as bytes divided by a fixed ratio, rounded up.
type Heuristic struct {
	CharsPerToken int
}

// NewHeuristic returns the default bytes/4 estimator.
func NewHeuristic() *Heuristic {
	return &Heuristic{CharsPerToken: DefaultCharsPerToken}
}

// Estimate implements Estimator.
func (h *Heuristic) Estimate(text string) int {
	if len(text) == 0 {
		return 0
	}
	cpt := h.CharsPerToken
	if cpt <= 0 {
		cpt = DefaultCharsPerToken
	}
	return (len(text) + cpt - 1) / cpt
}

// Name implements Estimator.
func (h *Heuristic) Name() string {
	return "heuristic"
}

// Tiktoken estimates tokens with a real BPE encoding.
type Tiktoken struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTiktoken creates a tiktoken estimator for the given encoding name.
// An empty name selects DefaultEncoding.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoding %q: %w", encoding, err)
	}
	return &Tiktoken{encoding: enc, name: encoding}, nil
}

// Estimate implements Estimator.
func (t *Tiktoken) Estimate(text string) int {
	if text == "" {
		return 0
	}
	return len(t.encoding.Encode(text, nil, nil))
}

// Name implements Estimator.
func (t *Tiktoken) Name() string {
	return "tiktoken/" + t.name
}
