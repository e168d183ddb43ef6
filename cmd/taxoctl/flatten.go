package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taxonomy-browser/internal/ingest"
)

var outputPath string

var flattenCmd = &cobra.Command{
	Use:   "flatten [source]",
	Short: "Flatten a structure document into JSON-lines records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, err := loadNodes(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}

		w := bufio.NewWriter(out)
		if err := ingest.EncodeRecords(w, nodes); err != nil {
			return err
		}
		return w.Flush()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [source]",
	Short: "Print record statistics for a structure document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, err := loadNodes(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		stats := ingest.ComputeStats(nodes)
		stats.Source = sourceFor(args[0]).String()

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

func init() {
	flattenCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write records to a file instead of stdout")
}
