package main

import (
	"fmt"
	"strings"

	"github.com/matsen/bibscope/internal/config"
	"github.com/matsen/bibscope/internal/index"
	"github.com/matsen/bibscope/internal/storage"
	"github.com/spf13/cobra"
)

var (
	edgesLimit int
	edgesFor   string
	edgesOut   string
	edgesFrom  string
)

func init() {
	edgesCmd.Flags().IntVar(&edgesLimit, "limit", DefaultSearchLimit, "Maximum edges to return (0 for all)")
	edgesCmd.Flags().StringVar(&edgesFor, "for", "", "Only edges touching this identifier")
	edgesCmd.Flags().StringVarP(&edgesOut, "out", "o", "", "Export every edge of the relation to a JSONL file")
	edgesCmd.Flags().StringVar(&edgesFrom, "from", "", "Query a JSONL edge file exported with --out instead of the workspace")
	rootCmd.AddCommand(edgesCmd)
}

var edgesCmd = &cobra.Command{
	Use:   "edges [relation]",
	Short: "Query co-occurrence and citation edges",
	Long: `Query the weighted edges derived from the workspace records.

Relations: ` + relationNames() + `.

Examples:
  bibscope edges co-authorship --limit 20
  bibscope edges --for a_3
  bibscope edges co-citation -o cocitation.jsonl
  bibscope edges --from cocitation.jsonl --for r_4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdges,
}

func relationNames() string {
	names := make([]string, len(index.Relations))
	for i, r := range index.Relations {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

func runEdges(cmd *cobra.Command, args []string) error {
	var rel index.Relation
	if len(args) > 0 {
		var ok bool
		if rel, ok = index.ParseRelation(args[0]); !ok {
			exitWithError(ExitError, "unknown relation %q (valid: %s)", args[0], relationNames())
		}
	}
	if edgesFrom != "" {
		edges, err := storage.ReadEdges(config.ExpandPath(edgesFrom))
		if err != nil {
			exitWithError(ExitDataError, "reading edges: %v", err)
		}
		return printEdges(filterEdges(edges, rel, edgesFor, edgesLimit))
	}
	if rel == "" && edgesFor == "" {
		exitWithError(ExitError, "a relation or --for is required")
	}

	root := mustFindWorkspace()

	if edgesOut != "" {
		if rel == "" {
			exitWithError(ExitError, "--out requires a relation")
		}
		edges := index.Build(mustReadRecords(root)).Edges(rel)
		path := config.ExpandPath(edgesOut)
		if err := storage.WriteEdges(path, edges); err != nil {
			exitWithError(ExitError, "writing edges: %v", err)
		}
		if humanOutput {
			fmt.Printf("Wrote %d %s edges to %s\n", len(edges), rel, path)
		} else {
			outputJSON(StatusResponse{Status: "exported", Path: path})
		}
		return nil
	}

	db := mustOpenDatabase(root)
	defer db.Close()

	var edges []index.Edge
	var err error
	if edgesFor != "" {
		edges, err = db.EdgesFor(edgesFor)
		edges = filterEdges(edges, rel, "", 0)
	} else {
		edges, err = db.EdgesByRelation(rel, edgesLimit)
	}
	if err != nil {
		exitWithError(ExitError, "querying edges: %v", err)
	}
	return printEdges(edges)
}

// filterEdges keeps the edges of relation rel touching id, up to limit.
// Empty criteria and a zero limit keep everything.
func filterEdges(edges []index.Edge, rel index.Relation, id string, limit int) []index.Edge {
	out := []index.Edge{}
	for _, e := range edges {
		if limit > 0 && len(out) == limit {
			break
		}
		if rel != "" && e.Relation != rel {
			continue
		}
		if id != "" && e.SourceID != id && e.TargetID != id {
			continue
		}
		out = append(out, e)
	}
	return out
}

func printEdges(edges []index.Edge) error {
	if edges == nil {
		edges = []index.Edge{}
	}
	if !humanOutput {
		return outputJSON(edges)
	}
	if len(edges) == 0 {
		fmt.Println("No edges found")
		return nil
	}
	for _, e := range edges {
		fmt.Printf("%s --%s--> %s (weight %d)\n", e.SourceID, e.Relation, e.TargetID, e.Weight)
	}
	return nil
}
