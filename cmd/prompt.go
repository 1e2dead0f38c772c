package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"learnlog/internal/prompt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	promptBudget int
	promptCopy   bool
	promptOut    string
)

func init() {
	rootCmd.AddCommand(promptCmd)

	promptCmd.Flags().IntVar(&promptBudget, "budget", 0, "approximate token budget (0 = default)")
	promptCmd.Flags().BoolVar(&promptCopy, "copy", false, "copy the prompt to the clipboard")
	promptCmd.Flags().StringVar(&promptOut, "out", "", "write the prompt to a file")
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Generate a curation prompt from recent session stubs",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, project, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		gen := prompt.NewGenerator(st, project)
		text, err := gen.Generate(prompt.Options{Budget: promptBudget})
		if err != nil {
			return err
		}

		if promptCopy {
			if err := clipboard.WriteAll(text); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not copy to clipboard: %v\n", err)
			} else {
				fmt.Println("Prompt copied to clipboard!")
			}
		}

		if promptOut != "" {
			outPath := promptOut
			if !filepath.IsAbs(outPath) {
				dir, _ := os.Getwd()
				outPath = filepath.Join(dir, outPath)
			}
			if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
				return fmt.Errorf("write file: %w", err)
			}
			fmt.Printf("Prompt written to %s\n", outPath)
		}

		if !promptCopy && promptOut == "" {
			fmt.Println(text)
		}

		return nil
	},
}
