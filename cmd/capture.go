package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"learnlog/internal/config"
	"learnlog/internal/knowledge"
	"learnlog/internal/store"
	"learnlog/internal/transcript"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	captureTranscript string
	captureProjectDir string
)

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().StringVar(&captureTranscript, "transcript", "", "transcript file to capture (default: from stdin payload, else newest session log)")
	captureCmd.Flags().StringVar(&captureProjectDir, "project-dir", "", "project directory (default: current directory)")
}

// capture is the session-end hook entry point. Everything except a
// knowledge file write failure is recoverable: the stub still gets
// written (minimal if need be) and the command exits 0, because a
// failing hook must not disturb the host's session teardown. All
// diagnostics go to stderr; stdout stays clean for the host.
var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture the just-ended session into the knowledge file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectDir := captureProjectDir
		if projectDir == "" {
			var err error
			projectDir, err = os.Getwd()
			if err != nil {
				return err
			}
		}

		payload := readHookPayload()

		transcriptPath := captureTranscript
		if transcriptPath == "" {
			transcriptPath = payload.TranscriptPath
		}
		if transcriptPath == "" {
			transcriptPath = locateTranscript(projectDir, payload)
		}
		if transcriptPath == "" {
			fmt.Fprintln(os.Stderr, "Warning: no session log found, writing minimal stub")
		}

		cfg, err := config.Load(projectDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using default topics)\n", err)
		}

		rec := transcript.Extract(transcriptPath, cfg.Topics)
		rec.SessionID = payload.SessionID

		st, err := store.New(projectDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: capture index unavailable: %v\n", err)
			st = nil
		} else {
			defer st.Close()
		}

		if st != nil && transcriptPath != "" {
			processed, err := st.IsTranscriptProcessed(transcriptPath)
			if err == nil && processed {
				fmt.Fprintf(os.Stderr, "Transcript already captured, skipping: %s\n", transcriptPath)
				return nil
			}
		}

		stub := knowledge.FormatStub(rec, time.Now())

		w := knowledge.NewWriter(projectDir, knowledge.NewFileLocker(lockPath(projectDir)))
		if err := w.InsertStub(stub); err != nil {
			return fmt.Errorf("write %s: %w", knowledge.FileName, err)
		}

		sessionID := rec.SessionID
		if st != nil {
			sess, err := st.RecordSession(
				rec.SessionID,
				filepath.Base(projectDir),
				strings.Join(rec.Topics, ", "),
				rec.Summary,
				stub,
				transcriptPath,
			)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not index session: %v\n", err)
			} else {
				sessionID = sess.ID
				if transcriptPath != "" {
					var size int64
					if info, err := os.Stat(transcriptPath); err == nil {
						size = info.Size()
					}
					if err := st.MarkTranscriptProcessed(transcriptPath, sess.ID, size); err != nil {
						fmt.Fprintf(os.Stderr, "Warning: could not mark transcript processed: %v\n", err)
					}
				}
			}
		}

		fmt.Fprintf(os.Stderr, "Added learning entry for session %s\n", shortID(sessionID))
		return nil
	},
}

func readHookPayload() *transcript.Payload {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return &transcript.Payload{}
	}
	p, err := transcript.ReadPayload(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return &transcript.Payload{}
	}
	return p
}

func locateTranscript(projectDir string, payload *transcript.Payload) string {
	dir := payload.Cwd
	if dir == "" {
		dir = projectDir
	}
	logDir, err := transcript.ProjectLogDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return ""
	}
	path, err := transcript.FindLatest(logDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return ""
	}
	return path
}

func lockPath(projectDir string) string {
	idxDir := filepath.Join(projectDir, ".learnlog")
	_ = os.MkdirAll(idxDir, 0755)
	return filepath.Join(idxDir, "knowledge.lock")
}

func shortID(id string) string {
	if id == "" {
		return "unknown"
	}
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
