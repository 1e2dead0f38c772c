package knowledge

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"learnlog/internal/transcript"
)

const (
	maxStubFiles     = 8
	commitDisplayLen = 60
)

// FormatStub renders a session record as a stub entry. The field order
// and labels (Topics, Files, Commits, Tools, Summary, Transcript) are
// the contract the curation commands parse; don't reorder them.
func FormatStub(rec *transcript.SessionRecord, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "### %s - Session `%s`\n", now.Format("2006-01-02 15:04"), shortSessionID(rec.SessionID))
	sb.WriteString("\n")
	writeField(&sb, "Topics", strings.Join(rec.Topics, ", "))
	writeField(&sb, "Files", formatFiles(rec.Files))
	writeField(&sb, "Commits", formatCommits(rec.Commits))
	writeField(&sb, "Tools", formatTools(rec.Tools))
	sb.WriteString("\n")
	writeField(&sb, "Summary", rec.Summary)
	sb.WriteString("\n")
	writeField(&sb, "Transcript", formatTranscriptPath(rec.TranscriptPath))
	sb.WriteString("\n---\n")

	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		fmt.Fprintf(sb, "**%s**:\n", label)
		return
	}
	fmt.Fprintf(sb, "**%s**: %s\n", label, value)
}

func shortSessionID(id string) string {
	if id == "" {
		return "unknown"
	}
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

// formatTools orders counts by descending count, ties broken by
// first-seen order (the input order).
func formatTools(tools []transcript.ToolCount) string {
	sorted := make([]transcript.ToolCount, len(tools))
	copy(sorted, tools)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	parts := make([]string, 0, len(sorted))
	for _, t := range sorted {
		parts = append(parts, fmt.Sprintf("%s(%d)", t.Name, t.Count))
	}
	return strings.Join(parts, ", ")
}

func formatFiles(files []transcript.FileTouch) string {
	shown := files
	remaining := 0
	if len(shown) > maxStubFiles {
		remaining = len(shown) - maxStubFiles
		shown = shown[:maxStubFiles]
	}

	parts := make([]string, 0, len(shown)+1)
	for _, f := range shown {
		if f.New {
			parts = append(parts, fmt.Sprintf("`%s` (new)", f.Path))
		} else {
			parts = append(parts, fmt.Sprintf("`%s`", f.Path))
		}
	}
	if remaining > 0 {
		parts = append(parts, fmt.Sprintf("+%d more", remaining))
	}
	return strings.Join(parts, ", ")
}

func formatCommits(commits []string) string {
	parts := make([]string, 0, len(commits))
	for _, c := range commits {
		if len(c) > commitDisplayLen {
			c = c[:commitDisplayLen]
		}
		parts = append(parts, fmt.Sprintf("%q", c))
	}
	return strings.Join(parts, "; ")
}

func formatTranscriptPath(path string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("`%s`", path)
}
