// Package main provides the bibscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/bibscope/internal/config"
	"github.com/matsen/bibscope/internal/record"
	"github.com/matsen/bibscope/internal/storage"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	humanOutput bool
	logLevel    string

	// globalConfig is loaded before every command runs.
	globalConfig = &config.GlobalConfig{}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibscope",
	Short: "Bibliometric export ingestion and analysis",
	Long: `bibscope turns citation-database exports into one canonical table.

Supported exports: Scopus (CSV, BibTeX), Web of Science, PubMed,
Dimensions (CSV, XLSX) and OpenAlex.

A workspace keeps the canonical records in .bibscope/records.jsonl with an
ephemeral SQLite index for search, entity tables and co-occurrence edges.
All commands output JSON by default; use --human for readable text.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the global config")
	rootCmd.Version = Version
}

// setup loads .env and the global config and configures logging on stderr.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return err
	}
	globalConfig = cfg

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	lvl := cfg.Level()
	if logLevel != "" {
		if lvl, err = log.ParseLevel(logLevel); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
	}
	log.SetLevel(lvl)
	return nil
}

// mustFindWorkspace finds the workspace root, exits on error.
func mustFindWorkspace() string {
	root, err := config.Root()
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		exitWithError(ExitConfigError, "%v", err)
	}
	return root
}

// mustLoadConfig loads the workspace configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustReadRecords reads the canonical table of the workspace, exits on error.
func mustReadRecords(root string) *record.Table {
	t, err := storage.ReadRecords(config.RecordsPath(root))
	if err != nil {
		exitWithError(ExitDataError, "reading records: %v", err)
	}
	return t
}

// mustOpenDatabase opens the SQLite index, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(root string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustSaveRecords replaces the workspace records with t and rebuilds the
// query index from them.
func mustSaveRecords(root string, t *record.Table) {
	if err := storage.WriteRecords(config.RecordsPath(root), t); err != nil {
		exitWithError(ExitError, "writing records: %v", err)
	}
	db := mustOpenDatabase(root)
	defer db.Close()
	if _, err := db.Rebuild(t); err != nil {
		exitWithError(ExitDataError, "rebuilding database: %v", err)
	}
	log.WithField("documents", t.Len()).Debug("records saved and index rebuilt")
}

// mustAppendRecords appends the rows of t from row from on to the workspace
// records and rebuilds the query index from all of t.
func mustAppendRecords(root string, t *record.Table, from int) {
	tail := make([]int, 0, t.Len()-from)
	for i := from; i < t.Len(); i++ {
		tail = append(tail, i)
	}
	if err := storage.AppendRecords(config.RecordsPath(root), t.Select(tail)); err != nil {
		exitWithError(ExitError, "appending records: %v", err)
	}
	db := mustOpenDatabase(root)
	defer db.Close()
	if _, err := db.Rebuild(t); err != nil {
		exitWithError(ExitDataError, "rebuilding database: %v", err)
	}
	log.WithFields(log.Fields{"appended": len(tail), "documents": t.Len()}).Debug("records appended and index rebuilt")
}
