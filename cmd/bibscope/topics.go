package main

import (
	"fmt"

	"github.com/matsen/bibscope/internal/config"
	"github.com/matsen/bibscope/internal/summary"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	topicsSample   int
	topicsNoLabels bool
)

func init() {
	topicsCmd.Flags().IntVar(&topicsSample, "sample", 10, "Titles per topic sent to the model for labeling")
	topicsCmd.Flags().BoolVar(&topicsNoLabels, "no-labels", false, "Group documents by topic without asking the model for labels")
	rootCmd.AddCommand(topicsCmd)
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Group documents by topic using an external topic service",
	Long: `Send the title, abstract and keywords of every document to the topic
service configured as topics_url in the global config, group the documents
by the topic they are assigned and label each topic with the completion
model.

Documents the service leaves unclustered are omitted.`,
	Args: cobra.NoArgs,
	RunE: runTopics,
}

func runTopics(cmd *cobra.Command, args []string) error {
	if globalConfig.TopicsURL == "" {
		exitWithError(ExitConfigError, "no topic service configured (set topics_url in %s)", config.GlobalConfigPath())
	}
	t := mustReadRecords(mustFindWorkspace())

	service := summary.NewTopicService(globalConfig.TopicsURL, log.StandardLogger())
	assignments, err := summary.AssignTopics(cmd.Context(), service, t)
	if err != nil {
		exitWithServiceError("assigning topics", err)
	}
	topics := summary.GroupTopics(assignments)
	if !topicsNoLabels {
		if err := summary.LabelTopics(cmd.Context(), newCompletionClient(), t, topics, topicsSample); err != nil {
			exitWithServiceError("labeling topics", err)
		}
	}

	if !humanOutput {
		return outputJSON(topics)
	}
	if len(topics) == 0 {
		fmt.Println("No topics found")
		return nil
	}
	for _, tp := range topics {
		label := tp.Label
		if label == "" {
			label = "(unlabeled)"
		}
		fmt.Printf("Topic %d: %s (%d documents)\n", tp.ID, label, len(tp.Documents))
	}
	return nil
}
