package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"learnlog/internal/transcript"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureEndToEnd(t *testing.T) {
	dir := t.TempDir()

	lines := []string{
		`{"type":"user","message":{"role":"user","content":"please fix the bug"}}`,
		`{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","name":"Edit","input":{"file_path":"/p/scanner.go"}}]}}`,
		`{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","name":"Edit","input":{"file_path":"/p/scanner.go"}}]}}`,
		`{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","name":"Bash","input":{"command":"git commit -m 'fix: bug'"}}]}}`,
	}
	logPath := filepath.Join(dir, "session.jsonl")
	require.NoError(t, os.WriteFile(logPath, []byte(strings.Join(lines, "\n")+"\n"), 0644))

	rec := transcript.Extract(logPath, []string{"fix", "test"})
	rec.SessionID = "0123456789abcdef"

	w := NewWriter(dir, NoopLocker())
	require.NoError(t, w.InsertStub(FormatStub(rec, time.Now())))

	doc, err := w.Load()
	require.NoError(t, err)
	out := doc.String()

	assert.Contains(t, out, "**Tools**: Edit(2), Bash(1)")
	assert.Contains(t, out, "**Commits**: \"fix: bug\"")
	assert.Contains(t, out, "**Topics**: fix")
	assert.Contains(t, out, "Session `01234567...`")
	assert.Contains(t, out, HeaderConsolidated)
	assert.Contains(t, out, HeaderArchived)
}

func TestCaptureEndToEndNoParseableRecords(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "session.jsonl")
	require.NoError(t, os.WriteFile(logPath, []byte("garbage\nmore garbage\n"), 0644))

	rec := transcript.Extract(logPath, []string{"fix"})

	w := NewWriter(dir, NoopLocker())
	require.NoError(t, w.InsertStub(FormatStub(rec, time.Now())))

	doc, err := w.Load()
	require.NoError(t, err)
	out := doc.String()

	assert.Contains(t, out, HeaderRecent)
	assert.Contains(t, out, HeaderConsolidated)
	assert.Contains(t, out, HeaderArchived)
	assert.Contains(t, out, "**Topics**:\n")
	assert.Contains(t, out, "**Summary**: "+transcript.FallbackSummary)
}
