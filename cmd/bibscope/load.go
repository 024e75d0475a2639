package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matsen/bibscope/internal/config"
	"github.com/matsen/bibscope/internal/format"
	"github.com/matsen/bibscope/internal/ingest"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	loadFormat         string
	loadKeepDuplicates bool
	loadReplace        bool
	loadDryRun         bool
)

func init() {
	for _, c := range []*cobra.Command{loadCmd, mergeCmd} {
		c.Flags().StringVarP(&loadFormat, "format", "f", "", "Export format ("+strings.Join(format.Names(), ", ")+")")
		c.Flags().BoolVar(&loadKeepDuplicates, "keep-duplicates", false, "Skip duplicate detection")
		c.Flags().BoolVar(&loadDryRun, "dry-run", false, "Report what would be loaded without writing")
		c.MarkFlagRequired("format")
		rootCmd.AddCommand(c)
	}
	loadCmd.Flags().BoolVar(&loadReplace, "replace", false, "Replace the documents already in the workspace")
}

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load an export into an empty workspace",
	Long: `Load a citation-database export into the workspace.

The export is parsed, its fields are normalized to the canonical columns,
duplicates are removed (unless --keep-duplicates) and affiliations are
resolved. The workspace must be empty unless --replace is given; use
'bibscope merge' to add a second export.

Examples:
  bibscope load -f scopus scopus.csv
  bibscope load -f wos savedrecs.txt --keep-duplicates
  bibscope load -f openalex works.json.gz --replace`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

var mergeCmd = &cobra.Command{
	Use:   "merge <file>",
	Short: "Merge an export into the workspace",
	Long: `Merge a citation-database export into the documents already loaded.

The export is loaded on its own, appended to the workspace and duplicate
detection is run over the combined documents.

Examples:
  bibscope merge -f pubmed pubmed.txt
  bibscope merge -f dimensions dimensions.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

// LoadResult is the response for the load and merge commands.
type LoadResult struct {
	Status string              `json:"status"`
	Load   *ingest.Report      `json:"load,omitempty"`
	Merge  *ingest.MergeReport `json:"merge,omitempty"`
	Lines  []string            `json:"lines"`
}

func newLoader(ws *config.Config) *ingest.Loader {
	remove := config.RemovesDuplicates(ws, globalConfig) && !loadKeepDuplicates
	return ingest.NewLoader(
		ingest.WithLogger(log.StandardLogger()),
		ingest.WithEscapePolicy(globalConfig.EscapePolicy()),
		ingest.WithDuplicateRemoval(remove),
	)
}

// ingestExitCode maps a load error onto an exit code.
func ingestExitCode(err error) int {
	if errors.Is(err, format.ErrUnknownFormat) {
		return ExitError
	}
	return ExitDataError
}

func runLoad(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	ws := mustLoadConfig(root)

	if existing := mustReadRecords(root); existing.Len() > 0 && !loadReplace && !loadDryRun {
		exitWithError(ExitError, "workspace already holds %d documents; use 'bibscope merge' or --replace", existing.Len())
	}

	t, rep, err := newLoader(ws).Load(args[0], loadFormat)
	if err != nil {
		exitWithError(ingestExitCode(err), "%v", err)
	}

	status := "dry-run"
	if !loadDryRun {
		mustSaveRecords(root, t)
		ws.Imports = append(ws.Imports, config.Import{
			Path: args[0], Format: rep.Format, RunID: rep.RunID, Documents: rep.Final, At: time.Now().UTC(),
		})
		if err := ws.Save(root); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		status = "loaded"
	}

	printLines(LoadResult{Status: status, Load: rep, Lines: rep.Lines()})
	return nil
}

func runMerge(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	ws := mustLoadConfig(root)
	base := mustReadRecords(root)

	t, rep, err := newLoader(ws).Merge(base, args[0], loadFormat)
	if err != nil {
		exitWithError(ingestExitCode(err), "%v", err)
	}

	status := "dry-run"
	if !loadDryRun {
		if rep.Duplicates == 0 {
			// Nothing was removed, so the existing rows are untouched.
			mustAppendRecords(root, t, base.Len())
		} else {
			mustSaveRecords(root, t)
		}
		ws.Imports = append(ws.Imports, config.Import{
			Path: args[0], Format: rep.Added.Format, RunID: rep.Added.RunID, Documents: rep.NewDocuments, At: time.Now().UTC(),
		})
		if err := ws.Save(root); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		status = "merged"
	}

	printLines(LoadResult{Status: status, Merge: rep, Lines: rep.Lines()})
	return nil
}

func printLines(res LoadResult) {
	if !humanOutput {
		outputJSON(res)
		return
	}
	for _, l := range res.Lines {
		fmt.Println(l)
	}
}
