// Package transcript locates and parses the assistant's session logs
// (JSONL, one record per line) and derives the per-session metadata
// that gets written into the knowledge file.
package transcript

// FallbackSummary is used when a transcript carries no summary record.
const FallbackSummary = "Session completed (no summary available)"

// SessionRecord is the parsed result of one session's transcript.
// It is built once per session end, read-only after extraction.
type SessionRecord struct {
	SessionID      string
	TranscriptPath string

	// Topics are keyword matches against user messages, deduplicated,
	// in order of first appearance.
	Topics []string

	// Files are paths touched by edit/write tools, deduplicated, in
	// order of first appearance.
	Files []FileTouch

	// Commits are commit messages scraped from version-control
	// commands, deduplicated, truncated for display.
	Commits []string

	// Tools are per-tool invocation counts in first-seen order.
	Tools []ToolCount

	Summary string
}

// FileTouch is a file path touched during the session. New is set when
// the first operation observed against the path created it.
type FileTouch struct {
	Path string
	New  bool
}

// ToolCount is one tool's invocation count.
type ToolCount struct {
	Name  string
	Count int
}

// TotalToolCalls sums all per-tool counts.
func (r *SessionRecord) TotalToolCalls() int {
	total := 0
	for _, t := range r.Tools {
		total += t.Count
	}
	return total
}
