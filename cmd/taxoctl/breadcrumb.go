package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"taxonomy-browser/internal/breadcrumb"
)

var (
	pathJSON string
	event    breadcrumb.Event
)

var breadcrumbCmd = &cobra.Command{
	Use:   "breadcrumb",
	Short: "Apply a navigation event to a breadcrumb path",
	Long: `Reads a breadcrumb path as JSON, applies one navigation event and prints
the resulting path. Gap entries are written as {"gap":true}; null is also
accepted on input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var path breadcrumb.Path
		if pathJSON != "" {
			if err := json.Unmarshal([]byte(pathJSON), &path); err != nil {
				return fmt.Errorf("invalid --path: %w", err)
			}
		}

		next := breadcrumb.Next(path, event)

		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(struct {
			Kind        string          `json:"kind"`
			Breadcrumbs breadcrumb.Path `json:"breadcrumbs"`
		}{
			Kind:        breadcrumb.Classify(event).String(),
			Breadcrumbs: next,
		})
	},
}

func init() {
	f := breadcrumbCmd.Flags()
	f.StringVar(&pathJSON, "path", "[]", "Current path as a JSON array")
	f.StringVar(&event.ID, "id", "", "Target node id (empty navigates home)")
	f.StringVar(&event.AncestorID, "ancestor", "", "Ancestor the target was reached through")
	f.StringVar(&event.Label, "label", "", "Target label")
	f.BoolVar(&event.IsSearchResult, "search", false, "Target was picked from search results")
	f.StringVar(&event.RootID, "root", "", "Root id of the dataset")
}
