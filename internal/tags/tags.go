// Package tags derives topic tags for documents from keyword matching.
//
// Tags annotate the dense per-document record so a model can judge relevance
// without reading the body. Extraction is intentionally dumb: lowercase
// substring matching against a fixed rule table, sorted output, capped count.
package tags

import (
	"sort"
	"strings"
)

// MaxTags caps the number of tags per document.
const MaxTags = 5

// DefaultRules maps tags to the keywords that indicate them. A document
// gets a tag when any keyword appears in its path or content.
var DefaultRules = map[string][]string{
	// Frameworks
	"react":   {"react"},
	"vue":     {"vue"},
	"angular": {"angular"},
	"express": {"express"},
	"django":  {"django", "fastapi", "flask"},
	"rails":   {"rails"},
	"nextjs":  {"nextjs", "next.js"},

	// Languages
	"js":     {"javascript", ".js"},
	"ts":     {"typescript", ".ts"},
	"python": {"python", ".py", "pip"},
	"rust":   {"rust", "cargo", ".rs"},
	"go":     {"golang", "go mod", "go build", ".go"},
	"java":   {"java", "maven", "gradle"},

	// Infrastructure
	"docker":   {"docker", "dockerfile", "container"},
	"k8s":      {"kubernetes", "kubectl", "helm"},
	"aws":      {"aws", "s3", "lambda", "cloudformation"},
	"gcp":      {"gcp", "gcloud", "bigquery"},
	"postgres": {"postgresql", "postgres"},
	"mysql":    {"mysql"},
	"mongo":    {"mongodb"},
	"redis":    {"redis"},
	"elastic":  {"elasticsearch"},

	// Concepts
	"auth":         {"authentication", "login", "oauth"},
	"authz":        {"authorization", "permission"},
	"security":     {"security", "encrypt", "credential"},
	"testing":      {"testing", "unit test", "coverage"},
	"deploy":       {"deployment", "deploy", "release"},
	"monitoring":   {"monitoring", "metrics", "alerting"},
	"logging":      {"logging"},
	"cache":        {"caching", "cache"},
	"scale":        {"scaling", "scalability"},
	"perf":         {"performance", "latency", "benchmark"},
	"api":          {"api", "endpoint", "rest", "grpc"},
	"config":       {"configuration", "config"},
	"migration":    {"migration", "migrate"},
	"troubleshoot": {"troubleshoot", "error", "debug"},
}

// Extractor derives tags from document paths and content.
type Extractor struct {
	rules map[string][]string
}

// NewExtractor creates an extractor with the given rules.
// Empty rules fall back to DefaultRules.
func NewExtractor(rules map[string][]string) *Extractor {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Extractor{rules: rules}
}

// Extract returns the document's tags: every tag whose keywords match the
// path or content, sorted alphabetically, truncated to MaxTags.
func (e *Extractor) Extract(path, content string) []string {
	haystack := strings.ToLower(path) + "\n" + strings.ToLower(content)

	matched := make(map[string]bool)
	for tag, keywords := range e.rules {
		for _, keyword := range keywords {
			if strings.Contains(haystack, keyword) {
				matched[tag] = true
				break
			}
		}
	}

	result := make([]string, 0, len(matched))
	for tag := range matched {
		result = append(result, tag)
	}
	sort.Strings(result)
	if len(result) > MaxTags {
		result = result[:MaxTags]
	}
	return result
}
