package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"learnlog/internal/store"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(showCmd)
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List captured sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.ListSessions(50)
		if err != nil {
			return err
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions yet — run 'learnlog capture' first")
			return nil
		}

		fmt.Printf("%-18s %-20s %-24s %s\n", "ID", "CAPTURED", "TOPICS", "SUMMARY")
		fmt.Println("─────────────────────────────────────────────────────────────────────────────")
		for _, s := range sessions {
			fmt.Printf("%-18s %-20s %-24s %s\n",
				shortID(s.ID),
				s.CapturedAt.Local().Format("2006-01-02 15:04"),
				truncateShow(s.Topics, 24),
				truncateShow(s.Summary, 60),
			)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one captured session's stub",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := st.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("session %q not found", args[0])
		}

		fmt.Printf("Session:    %s\n", sess.ID)
		fmt.Printf("Captured:   %s\n", sess.CapturedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Project:    %s\n", sess.Project)
		fmt.Printf("Transcript: %s\n\n", sess.TranscriptPath)
		fmt.Println(sess.Stub)
		return nil
	},
}

func openStore() (*store.Store, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}

	idxDir := filepath.Join(dir, ".learnlog")
	if _, err := os.Stat(idxDir); os.IsNotExist(err) {
		return nil, "", fmt.Errorf("not initialized — run 'learnlog init' first")
	}

	st, err := store.New(dir)
	if err != nil {
		return nil, "", err
	}

	project := filepath.Base(dir)
	return st, project, nil
}

func truncateShow(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
