package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"taxonomy-browser/internal/ingest"
	"taxonomy-browser/internal/storage"
)

var dbPath string

var ingestCmd = &cobra.Command{
	Use:   "ingest [source]",
	Short: "Flatten a structure document and commit it to a SQLite database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := ingest.ParseFormat(formatName)
		if err != nil {
			return err
		}

		db, err := storage.New(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() { _ = db.Close() }()
		if err := storage.Migrate(db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		stats, err := ingest.NewPipeline(sourceFor(args[0]), storage.NewNodeRepo(db), format).
			WithLogger(slog.Default()).
			Run(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

func init() {
	ingestCmd.Flags().StringVar(&dbPath, "db", "./data/taxonomy.db", "SQLite database path")
}
