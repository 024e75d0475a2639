package main

import (
	"fmt"
	"sort"

	"github.com/matsen/bibscope/internal/index"
	"github.com/spf13/cobra"
)

var entitiesLimit int

func init() {
	entitiesCmd.Flags().IntVar(&entitiesLimit, "limit", 0, "Maximum entities to return (0 for all)")
	reportCmd.AddCommand(edaCmd)
	reportCmd.AddCommand(healthCmd)
	reportCmd.AddCommand(entitiesCmd)
	reportCmd.AddCommand(lookupCmd)
	reportCmd.AddCommand(typesCmd)
	reportCmd.AddCommand(affiliationsCmd)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Derived reports over the workspace records",
}

var edaCmd = &cobra.Command{
	Use:   "eda",
	Short: "Main information about the collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ix := index.Build(mustReadRecords(mustFindWorkspace()))
		rows := ix.EDA()
		if humanOutput {
			printRows(rows)
			return nil
		}
		out := make([]index.Row, 0, len(rows))
		for _, r := range rows {
			if !r.IsSeparator() {
				out = append(out, r)
			}
		}
		return outputJSON(out)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Completeness of the key bibliographic columns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := index.Build(mustReadRecords(mustFindWorkspace())).Health()
		if !humanOutput {
			return outputJSON(rows)
		}
		for _, r := range rows {
			fmt.Printf("%-20s %-20s %8s %6d\n", r.Entry, r.Column, r.Completeness, r.Documents)
		}
		return nil
	},
}

var entitiesCmd = &cobra.Command{
	Use:   "entities <kind>",
	Short: "List an entity table",
	Long: `List an entity table with document counts, citations and, for
authors, h-index and g-index.

Kinds: authors, sources, institutions, countries, author_keywords,
keywords_plus, languages, references.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		k := mustParseKind(args[0])
		root := mustFindWorkspace()
		db := mustOpenDatabase(root)
		defer db.Close()

		entities, err := db.Entities(k, entitiesLimit)
		if err != nil {
			exitWithError(ExitError, "listing %s: %v", k, err)
		}
		if entities == nil {
			entities = []index.Entity{}
		}
		if !humanOutput {
			return outputJSON(entities)
		}
		for _, e := range entities {
			id := e.ID
			if id == "" {
				id = "-"
			}
			fmt.Printf("%-8s %-50s %5d docs %6d cites", id, truncateString(e.Name, 50), e.Documents, e.Citations)
			if k == index.Authors {
				fmt.Printf("  h=%d g=%d", e.HIndex, e.GIndex)
			}
			fmt.Println()
		}
		return nil
	},
}

// LookupResult is the response for the lookup command.
type LookupResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <id>...",
	Short: "Resolve entity or document identifiers",
	Long: `Resolve identifiers such as a_3 (author), j_0 (source), c_2 (country)
or a plain row number (document) to their names.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix := index.Build(mustReadRecords(mustFindWorkspace()))
		results := make([]LookupResult, 0, len(args))
		for _, id := range args {
			name, ok := ix.Lookup(id)
			if !ok {
				exitWithError(ExitDataError, "unknown identifier %q", id)
			}
			results = append(results, LookupResult{ID: id, Name: name})
		}
		if !humanOutput {
			return outputJSON(results)
		}
		for _, r := range results {
			fmt.Printf("%s: %s\n", r.ID, r.Name)
		}
		return nil
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Rows grouped by document type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		types := index.Build(mustReadRecords(mustFindWorkspace())).DocumentTypes()
		if !humanOutput {
			return outputJSON(types)
		}
		names := make([]string, 0, len(types))
		for name := range types {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s: %d documents\n", name, len(types[name]))
		}
		return nil
	},
}

var affiliationsCmd = &cobra.Command{
	Use:   "affiliations",
	Short: "Author to institution and country links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		links := index.Build(mustReadRecords(mustFindWorkspace())).AuthorAffiliations()
		if links == nil {
			links = []index.AuthorAffiliation{}
		}
		if !humanOutput {
			return outputJSON(links)
		}
		for _, l := range links {
			fmt.Printf("[%d] %s | %s | %s\n", l.Document, l.Author, l.Institution, l.Country)
		}
		return nil
	},
}
