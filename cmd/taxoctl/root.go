package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taxonomy-browser/internal/ingest"
	"taxonomy-browser/internal/taxonomy"
)

var (
	formatName string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "taxoctl",
	Short:         "Flatten, inspect and load taxonomy structure documents",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&formatName, "format", "f", string(ingest.FormatXML), "Document format: xml or records")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(flattenCmd, statsCmd, ingestCmd, breadcrumbCmd)
}

// sourceFor treats http and https arguments as URLs and anything else as a path.
func sourceFor(arg string) ingest.Source {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return ingest.NewHTTPSource(arg, 60*time.Second, 3)
	}
	return ingest.FileSource{Path: arg}
}

func loadNodes(ctx context.Context, arg string) ([]taxonomy.Node, error) {
	format, err := ingest.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	return ingest.NewPipeline(sourceFor(arg), nil, format).Load(ctx)
}
