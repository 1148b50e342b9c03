// Verdant compresses markdown documentation trees into LLM-ready context.
//
// It scans a directory for markdown, strips redundancy at a configurable
// level, and writes model-tuned output in a readable classic format or the
// dense VRD format.
//
// Usage:
//
//	# Compress ./docs with defaults
//	verdant compress ./docs
//
//	# Dense format at extreme level, tuned for GPT
//	verdant compress --format dense --level extreme --profile gpt ./docs
//
//	# Keep the output current while editing
//	verdant compress --watch ./docs
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "verdant",
	Short: "Compress markdown documentation for LLM consumption",
	Long: `Verdant compresses markdown documentation trees into compact context
files for large language models. Structure is condensed into one-line
notation, repeated paragraphs are folded, and output is shaped for the
target model's tokenizer habits.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(versionCmd)
}
