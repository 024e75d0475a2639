package main

import (
	"fmt"
	"strings"

	"github.com/matsen/bibscope/internal/index"
	"github.com/matsen/bibscope/internal/record"
	"github.com/matsen/bibscope/internal/storage"
	"github.com/spf13/cobra"
)

var (
	searchLimit   int
	searchAuthors []string
	searchYear    string
	searchTitle   string
	searchSource  string
	searchType    string
	searchDOI     string
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().StringArrayVarP(&searchAuthors, "author", "a", nil, "Search by author name (can be repeated, uses AND logic)")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Filter by year: exact (2024), range (2020:2024), or open (2020: or :2024)")
	searchCmd.Flags().StringVarP(&searchTitle, "title", "t", "", "Search in title only")
	searchCmd.Flags().StringVar(&searchSource, "source", "", "Filter by source title (partial match)")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Filter by document type")
	searchCmd.Flags().StringVar(&searchDOI, "doi", "", "Lookup by exact DOI")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search documents by keyword, author, or year",
	Long: `Search the workspace documents.

The positional query searches titles, abstracts, keywords and authors.
Author matching is by word prefix, so "smi j" matches "Smith J.".

Examples:
  bibscope search "machine learning"
  bibscope search -a "Smith J" --year 2020:
  bibscope search --title "bibliometric" --source scientometrics
  bibscope search --doi 10.1007/s11192-021-03948-5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	db := mustOpenDatabase(root)
	defer db.Close()

	var docs []storage.Document
	var err error
	if searchDOI != "" {
		docs, err = db.FindByDOI(index.CleanDOI(strings.TrimSpace(searchDOI)))
	} else {
		filters := storage.SearchFilters{
			Authors:      searchAuthors,
			Title:        searchTitle,
			Source:       searchSource,
			DocumentType: searchType,
		}
		if len(args) > 0 {
			filters.Keyword = args[0]
		}
		if filters.YearFrom, filters.YearTo, err = parseYearRange(searchYear); err != nil {
			exitWithError(ExitError, "invalid year format: %v", err)
		}
		docs, err = db.Search(filters, searchLimit)
	}
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if docs == nil {
		docs = []storage.Document{}
	}
	if humanOutput {
		if len(docs) == 0 {
			fmt.Println("No documents found")
			return nil
		}
		fmt.Printf("Found %d documents:\n\n", len(docs))
		for _, d := range docs {
			printDocumentSummary(d)
		}
	} else {
		outputJSON(docs)
	}
	return nil
}

func printDocumentSummary(d storage.Document) {
	r := d.Record
	fmt.Printf("[%d] %s\n", d.Row, truncateString(r.Get("title"), SearchTitleMaxLen))
	if author := r.Get("author"); !record.IsUnknown(author) {
		fmt.Printf("    %s\n", truncateString(author, SearchTitleMaxLen))
	}
	fmt.Printf("    %s (%s)\n", r.Get("journal"), r.Get("year"))
	if doi := r.Get("doi"); !record.IsUnknown(doi) {
		fmt.Printf("    doi:%s\n", doi)
	}
	fmt.Println()
}
