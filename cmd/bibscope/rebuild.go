package main

import (
	"fmt"

	"github.com/matsen/bibscope/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query index from the records file",
	Long: `Rebuild the SQLite query index from .bibscope/records.jsonl.

Use this after pulling changes from git or if the database becomes corrupted.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status    string         `json:"status"`
	Documents int            `json:"documents"`
	Edges     map[string]int `json:"edges"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	db := mustOpenDatabase(root)
	defer db.Close()

	n, err := db.RebuildFromJSONL(config.RecordsPath(root))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding database: %v", err)
	}
	counts, err := db.CountEdges()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	edges := make(map[string]int, len(counts))
	total := 0
	for rel, c := range counts {
		edges[string(rel)] = c
		total += c
	}

	if humanOutput {
		fmt.Printf("Rebuilt query database with %d documents and %d edges\n", n, total)
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Documents: n, Edges: edges})
	}
	return nil
}
