package store

import "time"

// Session is one captured session in the local index. The index exists
// so repeated captures of one transcript are skipped and so the
// sessions/show/prompt commands don't re-scan transcript logs.
type Session struct {
	ID             string    `json:"id"`
	CapturedAt     time.Time `json:"captured_at"`
	Project        string    `json:"project"`
	Topics         string    `json:"topics"`
	Summary        string    `json:"summary"`
	Stub           string    `json:"stub"`
	TranscriptPath string    `json:"transcript_path"`
}
