package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "learnlog",
	Short: "Continual-learning memory for AI coding sessions",
	Long: `learnlog captures metadata from AI coding-assistant sessions at
session end and appends stub summaries to CLAUDE-learned.md, the
project knowledge file that assistant-side curation commands later
consolidate and promote.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
