package compress

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fyrsmithlabs/verdant/internal/dictionary"
	"github.com/fyrsmithlabs/verdant/internal/document"
)

var (
	fluffPhraseRe = regexp.MustCompile(`(?i)\b(please note that|it should be noted that|it is important to note that|as mentioned above|as mentioned earlier|as we can see)\s*`)
	fluffToRe     = regexp.MustCompile(`(?i)\b(in order to|for the purpose of)\b`)
	fluffCauseRe  = regexp.MustCompile(`(?i)\bdue to the fact that\b`)
	fluffNowRe    = regexp.MustCompile(`(?i)\bat this point in time\b`)
	spaceRunRe    = regexp.MustCompile(`[ \t]{2,}`)

	connectorRe = regexp.MustCompile(`(?i)\b(however|therefore|furthermore|moreover|additionally),\s+`)
	qualifierRe = regexp.MustCompile(`(?i)\b(very|really|quite|basically)\s+`)
	eventRe     = regexp.MustCompile(`(?i)\bin the event that\b`)
	contrastRe  = regexp.MustCompile(`(?i)\bon the other hand\b`)
	suchAsRe    = regexp.MustCompile(`(?i)\bsuch as\b`)
	andSoOnRe   = regexp.MustCompile(`(?i)\band so on\b`)

	articleRe = regexp.MustCompile(`(?i)\b(a|an|the) +`)

	iffRe       = regexp.MustCompile(`(?i)\bif and only if\b`)
	impliesRe   = regexp.MustCompile(`(?i)\bimplies\b`)
	thereforeRe = regexp.MustCompile(`(?i)\btherefore\b`)
	becauseRe   = regexp.MustCompile(`(?i)\bbecause\b`)
	returnsRe   = regexp.MustCompile(`(?i)\breturns\b`)
	equalsRe    = regexp.MustCompile(`(?i)\bequals\b`)
	approxRe    = regexp.MustCompile(`(?i)\bapproximately\b`)

	// markerPrefixRe matches condensed notation prefixes that must survive
	// lexical rewriting untouched.
	markerPrefixRe = regexp.MustCompile(`^(H[1-6]:|[•№☐✔]+)`)
)

// Substitutions maps abbreviation codes to the expansions they replaced.
type Substitutions map[string]string

// LexicalCompressor applies the level-gated phrase rewrite ladder to
// paragraph and heading units. Fence units pass through untouched, and each
// rule only ever shortens text, so raising the level never grows output.
type LexicalCompressor struct {
	rules []rule
	used  Substitutions
}

type rule struct {
	minLevel Level
	apply    func(string) string
}

// NewLexicalCompressor creates a compressor for the given level. A nil
// dictionary falls back to the builtin abbreviation table.
func NewLexicalCompressor(level Level, dict *dictionary.Table) *LexicalCompressor {
	if dict == nil {
		dict = dictionary.Default()
	}
	c := &LexicalCompressor{used: make(Substitutions)}
	all := []rule{
		{minLevel: LevelMedium, apply: applyFluff},
		{minLevel: LevelHigh, apply: applySentence},
		{minLevel: LevelExtreme, apply: applyArticles},
		{minLevel: LevelExtreme, apply: c.abbreviator(dict)},
		{minLevel: LevelExtreme, apply: applySymbolic},
	}
	for _, r := range all {
		if level.AtLeast(r.minLevel) {
			c.rules = append(c.rules, r)
		}
	}
	return c
}

// Apply runs the active rules over every unit and returns the rewritten
// set. Lines and units emptied by rewriting are dropped.
func (c *LexicalCompressor) Apply(units []document.Unit) []document.Unit {
	if len(c.rules) == 0 {
		return units
	}
	out := make([]document.Unit, 0, len(units))
	for _, u := range units {
		if u.Kind == document.UnitFence {
			out = append(out, u)
			continue
		}
		lines := make([]string, 0, len(u.Lines))
		for _, line := range u.Lines {
			prefix, text := splitMarker(line)
			for _, r := range c.rules {
				text = r.apply(text)
			}
			text = strings.TrimRight(spaceRunRe.ReplaceAllString(text, " "), " \t")
			if prefix == "" && strings.TrimSpace(text) == "" {
				continue
			}
			lines = append(lines, prefix+text)
		}
		if len(lines) == 0 {
			continue
		}
		u.Lines = lines
		out = append(out, u)
	}
	return out
}

// Used returns the abbreviation substitutions applied so far, keyed by
// code. The map grows across Apply calls.
func (c *LexicalCompressor) Used() Substitutions {
	return c.used
}

// splitMarker separates a condensed notation prefix from the rewritable
// remainder of the line.
func splitMarker(line string) (string, string) {
	if m := markerPrefixRe.FindString(line); m != "" {
		return m, line[len(m):]
	}
	return "", line
}

func applyFluff(text string) string {
	text = fluffPhraseRe.ReplaceAllString(text, "")
	text = fluffToRe.ReplaceAllString(text, "to")
	text = fluffCauseRe.ReplaceAllString(text, "because")
	text = fluffNowRe.ReplaceAllString(text, "now")
	return text
}

func applySentence(text string) string {
	text = connectorRe.ReplaceAllString(text, "")
	text = qualifierRe.ReplaceAllString(text, "")
	text = eventRe.ReplaceAllString(text, "if")
	text = contrastRe.ReplaceAllString(text, "vs")
	text = suchAsRe.ReplaceAllString(text, "e.g.")
	text = andSoOnRe.ReplaceAllString(text, "etc")
	return text
}

func applyArticles(text string) string {
	return articleRe.ReplaceAllString(text, "")
}

func applySymbolic(text string) string {
	text = iffRe.ReplaceAllString(text, "⟺")
	text = impliesRe.ReplaceAllString(text, "⟹")
	text = thereforeRe.ReplaceAllString(text, "∴")
	text = becauseRe.ReplaceAllString(text, "∵")
	text = returnsRe.ReplaceAllString(text, "→")
	text = equalsRe.ReplaceAllString(text, "=")
	text = approxRe.ReplaceAllString(text, "≈")
	return text
}

type abbrevPattern struct {
	re        *regexp.Regexp
	code      string
	expansion string
}

// abbreviator compiles the dictionary into longest-expansion-first
// patterns and records every code it substitutes.
func (c *LexicalCompressor) abbreviator(dict *dictionary.Table) func(string) string {
	entries := dict.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Expansion) > len(entries[j].Expansion)
	})
	patterns := make([]abbrevPattern, 0, len(entries))
	for _, e := range entries {
		patterns = append(patterns, abbrevPattern{
			re:        regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(e.Expansion) + `\b`),
			code:      e.Code,
			expansion: e.Expansion,
		})
	}
	return func(text string) string {
		for _, p := range patterns {
			if !p.re.MatchString(text) {
				continue
			}
			text = p.re.ReplaceAllString(text, p.code)
			c.used[p.code] = p.expansion
		}
		return text
	}
}
