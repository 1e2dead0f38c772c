package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Payload is the session-end event the host pipes to the hook on stdin.
type Payload struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	Cwd            string `json:"cwd"`
}

// ReadPayload decodes a session-end payload from r. An empty stream is
// not an error; it returns an empty payload so the caller can fall back
// to auto-detection.
func ReadPayload(r io.Reader) (*Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read session payload: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return &Payload{}, nil
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse session payload: %w", err)
	}
	return &p, nil
}

// ProjectLogDir returns the session-log directory for a project. The
// assistant stores per-project logs under ~/.claude/projects/<name>,
// where <name> is the project path with separators and dots folded to
// dashes.
func ProjectLogDir(projectDir string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}

	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("resolve project dir: %w", err)
	}

	return filepath.Join(homeDir, ".claude", "projects", sanitizeProjectName(abs)), nil
}

func sanitizeProjectName(path string) string {
	var sb strings.Builder
	for _, r := range path {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// FindLatest returns the most-recently-modified .jsonl log in logDir.
// An empty string (and nil error) means no log was found; the caller
// proceeds with a minimal record rather than failing the session end.
func FindLatest(logDir string) (string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var newest string
	var newestMod int64
	for _, e := range entries {
		// only top-level .jsonl files, skip directories (subagents)
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = filepath.Join(logDir, e.Name())
			newestMod = mod
		}
	}

	return newest, nil
}
