package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, NoopLocker())

	created, err := w.Ensure()
	require.NoError(t, err)
	assert.True(t, created)

	created, err = w.Ensure()
	require.NoError(t, err)
	assert.False(t, created)

	content, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), "# Project Learnings"))
	assert.Equal(t, 1, strings.Count(string(content), Marker))
}

func TestInsertStubCreatesFileFromTemplate(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, NoopLocker())

	require.NoError(t, w.InsertStub("### entry\n---"))

	doc, err := w.Load()
	require.NoError(t, err)
	assert.Contains(t, doc.String(), "### entry")
	assert.Contains(t, doc.String(), HeaderArchived)
}

func TestInsertStubSequenceNewestFirst(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, NoopLocker())

	stubs := []string{"### s1\n---", "### s2\n---", "### s3\n---", "### s4\n---"}
	for _, s := range stubs {
		require.NoError(t, w.InsertStub(s))
	}

	doc, err := w.Load()
	require.NoError(t, err)
	out := doc.String()

	last := -1
	for i := len(stubs) - 1; i >= 0; i-- {
		header := strings.SplitN(stubs[i], "\n", 2)[0]
		idx := strings.Index(out, header)
		require.GreaterOrEqual(t, idx, 0, header)
		assert.Greater(t, idx, last, "%s out of order", header)
		assert.Equal(t, 1, strings.Count(out, header))
		last = idx
	}
}

func TestInsertStubRejectsMangledFile(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, NoopLocker())
	require.NoError(t, os.WriteFile(w.Path(), []byte("# Someone replaced the whole file\n"), 0644))

	err := w.InsertStub("### entry\n---")
	require.Error(t, err)

	// the mangled file is left untouched rather than half-rewritten
	content, readErr := os.ReadFile(w.Path())
	require.NoError(t, readErr)
	assert.Equal(t, "# Someone replaced the whole file\n", string(content))
}

func TestInsertStubLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, NoopLocker())
	require.NoError(t, w.InsertStub("### entry\n---"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "stray temp file %s", e.Name())
	}
}

func TestConcurrentInsertsSerializedByLock(t *testing.T) {
	dir := t.TempDir()
	lockFile := filepath.Join(dir, "knowledge.lock")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			// separate lock handles on one path, as separate processes would hold
			w := NewWriter(dir, NewFileLocker(lockFile))
			assert.NoError(t, w.InsertStub("### concurrent entry\n---"))
		}(i)
	}
	wg.Wait()

	w := NewWriter(dir, NoopLocker())
	doc, err := w.Load()
	require.NoError(t, err)
	assert.Equal(t, 8, strings.Count(doc.String(), "### concurrent entry"))
}
