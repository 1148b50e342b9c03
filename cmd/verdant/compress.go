package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/verdant/internal/chunker"
	"github.com/fyrsmithlabs/verdant/internal/compress"
	"github.com/fyrsmithlabs/verdant/internal/config"
	"github.com/fyrsmithlabs/verdant/internal/dictionary"
	"github.com/fyrsmithlabs/verdant/internal/logging"
	"github.com/fyrsmithlabs/verdant/internal/output"
	"github.com/fyrsmithlabs/verdant/internal/pipeline"
	"github.com/fyrsmithlabs/verdant/internal/profile"
	"github.com/fyrsmithlabs/verdant/internal/render"
	"github.com/fyrsmithlabs/verdant/internal/scan"
	"github.com/fyrsmithlabs/verdant/internal/telemetry"
	"github.com/fyrsmithlabs/verdant/internal/tokens"
	"github.com/fyrsmithlabs/verdant/internal/watch"
)

var (
	flagConfig     string
	flagOutput     string
	flagLevel      string
	flagFormat     string
	flagProfile    string
	flagMaxLines   int
	flagDictionary string
	flagEstimator  string
	flagStripEmoji bool
	flagChrono     bool
	flagChunk      bool
	flagWatch      bool
)

var compressCmd = &cobra.Command{
	Use:   "compress [directory]",
	Short: "Compress a markdown tree into LLM-ready context files",
	Long: `Compress scans a directory for markdown documents and writes compressed
context files under the output prefix. Flags override the config file,
which overrides built-in defaults.

Examples:
  # Compress ./docs into compressed.md
  verdant compress ./docs

  # Dense VRD output at extreme level for GPT
  verdant compress --format dense --level extreme --profile gpt ./docs

  # Custom output prefix and chunk size
  verdant compress -o build/ctx --max-lines 500 ./docs

  # Recompress whenever markdown changes
  verdant compress --watch ./docs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompress,
}

func init() {
	f := compressCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "config file path")
	f.StringVarP(&flagOutput, "output", "o", "compressed", "output file prefix, may include a directory")
	f.StringVarP(&flagLevel, "level", "l", "medium", "compression level: low, medium, high, extreme")
	f.StringVarP(&flagFormat, "format", "f", "classic", "output format: classic, dense")
	f.StringVarP(&flagProfile, "profile", "p", "claude", "target model profile: claude, gpt, copilot")
	f.IntVar(&flagMaxLines, "max-lines", chunker.DefaultMaxLines, "maximum content lines per chunk")
	f.StringVar(&flagDictionary, "dictionary", "", "TOML abbreviation dictionary path")
	f.StringVar(&flagEstimator, "estimator", "heuristic", "token estimator: heuristic, tiktoken")
	f.BoolVar(&flagStripEmoji, "strip-emoji", true, "remove emoji outside code fences")
	f.BoolVar(&flagChrono, "chronological", true, "order documents oldest first")
	f.BoolVar(&flagChunk, "chunk", true, "split output into line-bounded chunks")
	f.BoolVarP(&flagWatch, "watch", "w", false, "watch the tree and recompress on changes")
}

func runCompress(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagConfig == "" {
		// A missing config dir only means there is no file layer to read.
		_ = config.EnsureConfigDir()
	}
	cfg, err := config.LoadWithFile(flagConfig)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	tel, err := setupTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tel.Shutdown(shutdownCtx)
	}()

	logger, err := setupLogging(cfg, tel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	level, err := compress.ParseLevel(cfg.Compression.Level)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(cfg.Compression.Format)
	if err != nil {
		return err
	}
	prefs, ok := profile.Lookup(cfg.Compression.Profile)
	if !ok {
		return fmt.Errorf("unknown profile %q (valid: %s)",
			cfg.Compression.Profile, strings.Join(profile.Names(), ", "))
	}
	dict, err := dictionary.Load(cfg.Compression.Dictionary)
	if err != nil {
		return err
	}
	estimator, err := buildEstimator(cfg.Compression.Estimator)
	if err != nil {
		return err
	}

	scanner, err := scan.NewScanner(&scan.Config{
		Include:       cfg.Scan.Include,
		Exclude:       cfg.Scan.Exclude,
		IgnoreFiles:   cfg.Scan.IgnoreFiles,
		MaxFileSize:   int64(cfg.Scan.MaxFileSizeKB) * 1024,
		Chronological: cfg.Compression.Chronological,
	}, logger)
	if err != nil {
		return err
	}

	svc, err := pipeline.NewService(pipeline.Config{
		Level:         level,
		Format:        format,
		Profile:       prefs,
		StripEmoji:    cfg.Compression.StripEmoji,
		Chronological: cfg.Compression.Chronological,
		Chunk:         cfg.Compression.Chunk,
		MaxLines:      cfg.Compression.MaxLines,
		Output:        cfg.Output,
		Dictionary:    dict,
		Estimator:     estimator,
	}, scanner, logger)
	if err != nil {
		return err
	}

	if format == render.FormatDense && !cfg.Compression.Chunk {
		logger.Warn(ctx, "dense format without chunking writes one large file and disables NEXT navigation")
	}

	writer := output.NewWriter(logger)
	runOnce := func(ctx context.Context) error {
		res, err := svc.Run(ctx, root)
		if err != nil {
			return err
		}
		for _, ch := range res.Chunks {
			if err := writer.Write(ctx, ch.Name, ch.Content); err != nil {
				return err
			}
		}
		printStats(res)
		return nil
	}

	if err := runOnce(ctx); err != nil {
		return err
	}
	if !flagWatch {
		return nil
	}

	watcher, err := watch.New(root, nil, logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Println(dimStyle.Render("Watching for changes. Press Ctrl-C to stop."))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-watcher.Triggers():
			if err := runOnce(ctx); err != nil {
				logger.Error(ctx, "recompression failed", zap.Error(err))
			}
		}
	}
}

// applyFlagOverrides copies explicitly set flags over loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = flagOutput
	}
	if flags.Changed("level") {
		cfg.Compression.Level = flagLevel
	}
	if flags.Changed("format") {
		cfg.Compression.Format = flagFormat
	}
	if flags.Changed("profile") {
		cfg.Compression.Profile = flagProfile
	}
	if flags.Changed("max-lines") {
		cfg.Compression.MaxLines = flagMaxLines
	}
	if flags.Changed("dictionary") {
		cfg.Compression.Dictionary = flagDictionary
	}
	if flags.Changed("estimator") {
		cfg.Compression.Estimator = flagEstimator
	}
	if flags.Changed("strip-emoji") {
		cfg.Compression.StripEmoji = flagStripEmoji
	}
	if flags.Changed("chronological") {
		cfg.Compression.Chronological = flagChrono
	}
	if flags.Changed("chunk") {
		cfg.Compression.Chunk = flagChunk
	}
}

func setupTelemetry(ctx context.Context, cfg *config.Config) (*telemetry.Telemetry, error) {
	telCfg := telemetry.NewDefaultConfig()
	telCfg.Enabled = cfg.Telemetry.Enabled
	telCfg.Insecure = cfg.Telemetry.Insecure
	telCfg.ServiceVersion = version
	if cfg.Telemetry.Endpoint != "" {
		telCfg.Endpoint = cfg.Telemetry.Endpoint
	}
	if cfg.Telemetry.ServiceName != "" {
		telCfg.ServiceName = cfg.Telemetry.ServiceName
	}

	tel, err := telemetry.New(ctx, telCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	return tel, nil
}

func setupLogging(cfg *config.Config, tel *telemetry.Telemetry) (*logging.Logger, error) {
	logCfg := logging.NewDefaultConfig()
	if cfg.Logging.Level != "" {
		level, err := logging.LevelFromString(cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
		logCfg.Level = level
	}
	if cfg.Logging.Format != "" {
		logCfg.Format = cfg.Logging.Format
	}
	if tel.IsEnabled() {
		logCfg.Output.OTEL = true
	}

	logger, err := logging.NewLogger(logCfg, tel.LoggerProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return logger, nil
}

func buildEstimator(name string) (tokens.Estimator, error) {
	if name == "tiktoken" {
		est, err := tokens.NewTiktoken("")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tiktoken estimator: %w", err)
		}
		return est, nil
	}
	return tokens.NewHeuristic(), nil
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)
)

// printStats writes the post-run report to stdout. Logs go to stderr, so
// the report stays pipeable.
func printStats(res *pipeline.Result) {
	st := res.Stats

	row := func(label, value string) {
		fmt.Printf("  %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-20s", label)),
			valueStyle.Render(value))
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("📊 COMPRESSION RESULTS:"))
	row("Files:", fmt.Sprintf("%d", st.Files))
	row("Characters:", fmt.Sprintf("%d → %d (%.1f%% reduction)",
		st.OriginalChars, st.CompressedChars, st.SavedPercent()))
	row("Lines:", fmt.Sprintf("%d → %d (%.1f%% reduction)",
		st.OriginalLines, st.CompressedLines, st.LineSavedPercent()))
	row("Est. tokens:", fmt.Sprintf("%d → %d (%.1f%% saved)",
		st.TokensBefore, st.TokensAfter, st.TokenSavedPercent()))
	if st.DuplicatesRemoved > 0 {
		row("Duplicates removed:", fmt.Sprintf("%d", st.DuplicatesRemoved))
	}
	if st.EmojiRemoved > 0 {
		row("Emoji removed:", fmt.Sprintf("%d", st.EmojiRemoved))
	}
	row("Chunks:", fmt.Sprintf("%d", st.Chunks))
	for _, ch := range res.Chunks {
		fmt.Printf("    %s %s\n", ch.Name,
			dimStyle.Render(fmt.Sprintf("(%d lines, ~%d tokens)", ch.Lines, ch.Tokens)))
	}

	if len(st.Warnings) > 0 {
		fmt.Println()
		fmt.Println(warningStyle.Render(fmt.Sprintf("⚠ %d integrity warning(s)", len(st.Warnings))))
		for _, w := range st.Warnings {
			fmt.Printf("    %s: %s\n", w.Path, w.Message)
		}
	}
}
