package main

import (
	"fmt"

	"github.com/matsen/bibscope/internal/index"
	"github.com/matsen/bibscope/internal/summary"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	summarizeTop        int
	summarizePromptOnly bool
)

func init() {
	summarizeCmd.Flags().IntVar(&summarizeTop, "top", 20, "Entities included in an entity summary")
	summarizeCmd.Flags().BoolVar(&summarizePromptOnly, "prompt-only", false, "Print the assembled prompt without calling the model")
	rootCmd.AddCommand(summarizeCmd)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <eda|kind>",
	Short: "Ask a language model to summarize a report",
	Long: `Assemble a prompt from the EDA report or an entity table and send it to
an OpenAI-compatible completion endpoint.

The endpoint, model and rate limit come from the llm section of the global
config. The API key is read from ` + summary.APIKeyEnv + ` or the config.

Examples:
  bibscope summarize eda
  bibscope summarize authors --top 10
  bibscope summarize keywords_plus --prompt-only`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

// SummarizeResult is the response for the summarize command.
type SummarizeResult struct {
	Target  string `json:"target"`
	Model   string `json:"model,omitempty"`
	Prompt  string `json:"prompt,omitempty"`
	Summary string `json:"summary,omitempty"`
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ix := index.Build(mustReadRecords(mustFindWorkspace()))

	var prompt string
	if args[0] == "eda" {
		prompt = summary.ReportPrompt(ix.EDA())
	} else {
		k := mustParseKind(args[0])
		prompt = summary.EntityPrompt(k, ix.Entities(k), summarizeTop)
	}

	if summarizePromptOnly {
		if humanOutput {
			fmt.Println(prompt)
			return nil
		}
		return outputJSON(SummarizeResult{Target: args[0], Prompt: prompt})
	}

	client := newCompletionClient()
	text, err := client.Complete(cmd.Context(), prompt)
	if err != nil {
		exitWithServiceError("summarizing", err)
	}

	if humanOutput {
		fmt.Println(text)
		return nil
	}
	return outputJSON(SummarizeResult{Target: args[0], Model: client.Model(), Summary: text})
}

// newCompletionClient builds the completion client from the llm section of
// the global config.
func newCompletionClient() *summary.Client {
	llm := globalConfig.LLM
	return summary.NewClient(
		summary.WithBaseURL(llm.BaseURL),
		summary.WithModel(llm.Model),
		summary.WithAPIKey(llm.APIKey),
		summary.WithRateLimit(llm.RateLimit),
		summary.WithLogger(log.StandardLogger()),
	)
}

func exitWithServiceError(action string, err error) {
	if summary.IsAuthError(err) {
		exitWithError(ExitAuthError, "%v (set %s or llm.api_key)", err, summary.APIKeyEnv)
	}
	exitWithError(ExitAPIError, "%s: %v", action, err)
}
