package main

import (
	"fmt"

	"github.com/matsen/bibscope/internal/dedupe"
	"github.com/spf13/cobra"
)

var dedupeDryRun bool

func init() {
	dedupeCmd.Flags().BoolVar(&dedupeDryRun, "dry-run", false, "Report duplicates without removing them")
	rootCmd.AddCommand(dedupeCmd)
}

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Remove duplicate documents from the workspace",
	Long: `Run duplicate detection over the workspace documents.

A document with a DOI duplicates an earlier one with the same DOI, compared
without regard to case. A document without a DOI duplicates an earlier one
with the same cleaned title. The first occurrence is kept.`,
	Args: cobra.NoArgs,
	RunE: runDedupe,
}

// DedupeResult is the response for the dedupe command.
type DedupeResult struct {
	Status     string `json:"status"`
	Original   int    `json:"original"`
	Duplicates []int  `json:"duplicates"`
	Final      int    `json:"final"`
}

func runDedupe(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	t := mustReadRecords(root)

	res := DedupeResult{Status: "dry-run", Original: t.Len(), Duplicates: []int{}}
	flags := dedupe.Flags(t)
	for i, dup := range flags {
		if dup {
			res.Duplicates = append(res.Duplicates, i)
		}
	}
	res.Final = t.Len() - len(res.Duplicates)

	if !dedupeDryRun && len(res.Duplicates) > 0 {
		mustSaveRecords(root, t.Drop(flags))
		res.Status = "deduplicated"
	} else if !dedupeDryRun {
		res.Status = "unchanged"
	}

	if humanOutput {
		fmt.Printf("A Total of %d Documents were Found (Original: %d, Duplicates Removed: %d)\n",
			res.Final, res.Original, len(res.Duplicates))
		if dedupeDryRun && len(res.Duplicates) > 0 {
			fmt.Printf("Duplicate rows: %v\n", res.Duplicates)
		}
	} else {
		outputJSON(res)
	}
	return nil
}
