package cmd

import (
	"fmt"
	"os"

	"learnlog/internal/knowledge"
	"learnlog/internal/store"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the knowledge file and capture index in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}

		w := knowledge.NewWriter(dir, knowledge.NewFileLocker(lockPath(dir)))
		created, err := w.Ensure()
		if err != nil {
			return fmt.Errorf("init failed: %w", err)
		}

		st, err := store.New(dir)
		if err != nil {
			return fmt.Errorf("init failed: %w", err)
		}
		st.Close()

		if created {
			fmt.Printf("Initialized learnlog in %s\n", dir)
			fmt.Printf("Knowledge file created at %s\n", knowledge.FileName)
		} else {
			fmt.Printf("Already initialized — %s exists\n", knowledge.FileName)
		}
		fmt.Println("Capture index at .learnlog/index.db")
		return nil
	},
}
