package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/matsen/bibscope/internal/config"
	"github.com/spf13/cobra"
)

var initName string

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Workspace name")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new bibscope workspace",
	Long: `Initialize a new bibscope workspace in the current directory.

Creates:
  .bibscope/
  ├── records.jsonl   # Canonical records (empty)
  ├── config.json     # Workspace config
  └── cache/          # SQLite index (rebuildable, gitignore it)`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if err := config.Init(root, &config.Config{Name: initName}); err != nil {
		if errors.Is(err, config.ErrWorkspaceExists) {
			exitWithError(ExitError, "directory already contains a bibscope workspace")
		}
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized bibscope workspace in %s\n", config.WorkspacePath(root))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.WorkspacePath(root)})
	}
	return nil
}
