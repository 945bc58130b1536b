package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/hugomg/ftl-cheatsheet/pkg/cheatsheet"
	"github.com/hugomg/ftl-cheatsheet/pkg/eventgraph"
	"github.com/hugomg/ftl-cheatsheet/pkg/eventindex"
	"github.com/hugomg/ftl-cheatsheet/pkg/ftldata"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var (
	flagConfig   string
	flagOutput   string
	flagIndex    string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:          "ftl-cheatsheet",
	Short:        "Generate an HTML cheatsheet from the FTL data files",
	SilenceUsage: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate <datadir>",
	Short: "Parse an FTL data directory and emit the cheatsheet page",
	Long: `Parses every XML file in the given FTL data directory, builds the
event graph, and writes a single self-contained HTML page to standard
output (or to a file with --output). Diagnostics go to standard error,
so the page can be redirected safely.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)

	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the page to this file (atomically) instead of stdout")
	generateCmd.Flags().StringVar(&flagIndex, "index", "", "Also export the event graph to a SQLite database at this path")
	generateCmd.Flags().StringVar(&flagConfig, "config", "./cheatsheet.json", "Path to the JSON configuration file")
	generateCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseLogLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dataDir := args[0]

	config, err := LoadConfig(flagConfig)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logLevel := config.LogLevel
	if flagLogLevel != "" {
		logLevel = flagLogLevel
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(logLevel)}))

	corpus, err := ftldata.LoadDir(logger, dataDir)
	if err != nil {
		return err
	}

	// Surface game-data features the generator does not understand
	// yet, so they are not silently missing from the page.
	auditor := ftldata.NewAuditor(logger)
	if err := auditor.AuditDir(dataDir); err != nil {
		return err
	}

	graph, err := eventgraph.Build(logger, corpus, config.ExtraRootEvents, config.ExtraRootGroups)
	if err != nil {
		return err
	}

	renderer, err := cheatsheet.NewRenderer(logger, graph, config.Page)
	if err != nil {
		return err
	}

	// Render into a buffer first: a failed run must not leave half a
	// page on stdout or clobber a previously generated file.
	var buf bytes.Buffer
	if err := renderer.Render(&buf); err != nil {
		return err
	}

	if flagOutput != "" {
		if err := atomic.WriteFile(flagOutput, bytes.NewReader(buf.Bytes())); err != nil {
			return fmt.Errorf("failed to write %s: %w", flagOutput, err)
		}
		logger.Info("Wrote cheatsheet", "path", flagOutput, "bytes", buf.Len())
	} else {
		if _, err := buf.WriteTo(os.Stdout); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}

	if findings := renderer.ReportProblems(); findings > 0 {
		logger.Warn("Page has consistency findings", "count", findings)
	}

	if flagIndex != "" {
		if err := exportIndex(cmd, graph, logger); err != nil {
			return err
		}
	}
	return nil
}

func exportIndex(cmd *cobra.Command, graph *eventgraph.Graph, logger *slog.Logger) error {
	db, err := initDB(flagIndex)
	if err != nil {
		return fmt.Errorf("failed to open index database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close index database", "error", err)
		}
	}()

	if err := eventindex.SetupSchema(db); err != nil {
		return fmt.Errorf("failed to set up index schema: %w", err)
	}
	if err := eventindex.Export(cmd.Context(), db, graph); err != nil {
		return fmt.Errorf("failed to export event index: %w", err)
	}
	logger.Info("Exported event index", "path", flagIndex,
		"events", len(graph.Events),
		"groups", len(graph.Groups),
		"ships", len(graph.Ships))
	return nil
}
