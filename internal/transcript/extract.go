package transcript

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	// mcpGroup collapses all mcp__* remote-tool invocations into one
	// aggregate counter so a chatty MCP server doesn't drown the core
	// tools; the per-tool counts still sum to the total invocations.
	mcpGroup = "MCP"

	commitDisplayLen = 60
	maxTopics        = 5
)

var commitFlagRe = regexp.MustCompile(`-m\s+["']([^"']+)["']`)
var commitHeredocRe = regexp.MustCompile(`(?s)<<'?EOF'?\n(.+?)(?:\n\s*Co-Authored|\nEOF)`)

type logLine struct {
	Type    string `json:"type"`
	Summary string `json:"summary"`
	Message struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

type contentBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// Extract scans the transcript at path and builds a SessionRecord.
// Unparseable lines are skipped, a truncated final line is tolerated,
// and a missing or unreadable transcript yields a minimal record with
// the fallback summary — session-end capture never fails on input.
func Extract(path string, topicWords []string) *SessionRecord {
	rec := &SessionRecord{
		TranscriptPath: path,
		Summary:        FallbackSummary,
	}
	if path == "" {
		return rec
	}

	f, err := os.Open(path)
	if err != nil {
		return rec
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 256*1024), 10*1024*1024) // tool outputs can be huge

	ex := newExtractor(topicWords)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var ll logLine
		if err := json.Unmarshal(line, &ll); err != nil {
			continue
		}
		ex.record(&ll)
	}
	// sc.Err() is deliberately ignored beyond stopping the scan: an
	// oversized or torn final line must not discard what was read.

	ex.finish(rec)
	return rec
}

type extractor struct {
	topicWords []string

	topics     []string
	topicSeen  map[string]bool
	files      []FileTouch
	fileSeen   map[string]bool
	commits    []string
	commitSeen map[string]bool
	toolOrder  []string
	toolCounts map[string]int
	summary    string
}

func newExtractor(topicWords []string) *extractor {
	return &extractor{
		topicWords: topicWords,
		topicSeen:  make(map[string]bool),
		fileSeen:   make(map[string]bool),
		commitSeen: make(map[string]bool),
		toolCounts: make(map[string]int),
	}
}

func (ex *extractor) record(ll *logLine) {
	switch ll.Type {
	case "summary":
		if ll.Summary != "" {
			ex.summary = ll.Summary
		}
	case "user":
		ex.matchTopics(userText(ll.Message.Content))
	case "assistant":
		var blocks []contentBlock
		if err := json.Unmarshal(ll.Message.Content, &blocks); err != nil {
			return
		}
		for _, b := range blocks {
			if b.Type != "tool_use" || b.Name == "" {
				continue
			}
			ex.countTool(b.Name)
			ex.recordToolInput(b.Name, b.Input)
		}
	}
}

func (ex *extractor) countTool(name string) {
	key := name
	if strings.HasPrefix(name, "mcp__") {
		key = mcpGroup
	}
	if _, ok := ex.toolCounts[key]; !ok {
		ex.toolOrder = append(ex.toolOrder, key)
	}
	ex.toolCounts[key]++
}

func (ex *extractor) recordToolInput(name string, input json.RawMessage) {
	var in struct {
		FilePath     string `json:"file_path"`
		NotebookPath string `json:"notebook_path"`
		Command      string `json:"command"`
	}
	if err := json.Unmarshal(input, &in); err != nil {
		return
	}

	switch name {
	case "Write":
		ex.touchFile(in.FilePath, true)
	case "Edit", "MultiEdit":
		ex.touchFile(in.FilePath, false)
	case "NotebookEdit":
		ex.touchFile(in.NotebookPath, false)
	case "Bash":
		if strings.Contains(in.Command, "git commit") && strings.Contains(in.Command, "-m") {
			ex.addCommit(commitMessage(in.Command))
		}
	}
}

// touchFile records a path once; the first operation seen against it
// decides whether it counts as newly created.
func (ex *extractor) touchFile(path string, created bool) {
	if path == "" {
		return
	}
	name := filepath.Base(path)
	if ex.fileSeen[name] {
		return
	}
	ex.fileSeen[name] = true
	ex.files = append(ex.files, FileTouch{Path: name, New: created})
}

func (ex *extractor) addCommit(msg string) {
	if msg == "" || ex.commitSeen[msg] {
		return
	}
	ex.commitSeen[msg] = true
	ex.commits = append(ex.commits, msg)
}

// matchTopics records vocabulary hits in order of first appearance in
// the text, deduplicated across the whole session.
func (ex *extractor) matchTopics(text string) {
	if text == "" || len(ex.topics) >= maxTopics {
		return
	}
	lower := strings.ToLower(text)

	type hit struct {
		kw  string
		pos int
	}
	var hits []hit
	for _, kw := range ex.topicWords {
		if ex.topicSeen[kw] {
			continue
		}
		if pos := strings.Index(lower, kw); pos >= 0 {
			hits = append(hits, hit{kw: kw, pos: pos})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	for _, h := range hits {
		if len(ex.topics) >= maxTopics {
			return
		}
		ex.topicSeen[h.kw] = true
		ex.topics = append(ex.topics, h.kw)
	}
}

func (ex *extractor) finish(rec *SessionRecord) {
	rec.Topics = ex.topics
	rec.Files = ex.files
	rec.Commits = ex.commits
	for _, name := range ex.toolOrder {
		rec.Tools = append(rec.Tools, ToolCount{Name: name, Count: ex.toolCounts[name]})
	}
	if ex.summary != "" {
		rec.Summary = ex.summary
	}
}

// userText flattens user message content, which is either a plain
// string or an array of content blocks (tool results are skipped).
func userText(raw json.RawMessage) string {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}
	var parts []string
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// commitMessage scrapes the message out of a git commit command,
// handling both -m "..." and the heredoc form the assistant favours.
func commitMessage(cmd string) string {
	if m := commitHeredocRe.FindStringSubmatch(cmd); m != nil {
		msg := strings.TrimSpace(m[1])
		if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
			msg = msg[:idx] // first line only
		}
		return truncate(msg, commitDisplayLen)
	}
	if m := commitFlagRe.FindStringSubmatch(cmd); m != nil {
		return truncate(m[1], commitDisplayLen)
	}
	return "(commit message not parsed)"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
