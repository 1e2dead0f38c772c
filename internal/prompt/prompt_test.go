package prompt

import (
	"strings"
	"testing"

	"learnlog/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T, stubs ...string) *store.Store {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	for i, stub := range stubs {
		_, err := st.RecordSession("", "proj", "", "summary", stub, "")
		require.NoError(t, err, "stub %d", i)
	}
	return st
}

func TestGenerateIncludesStubs(t *testing.T) {
	st := seedStore(t, "### session one\n---", "### session two\n---")

	text, err := NewGenerator(st, "proj").Generate(Options{})
	require.NoError(t, err)

	assert.Contains(t, text, "# Session review: proj")
	assert.Contains(t, text, "### session one")
	assert.Contains(t, text, "### session two")
}

func TestGenerateRespectsBudget(t *testing.T) {
	big := "### padded session\n" + strings.Repeat("words words words\n", 200) + "---"
	st := seedStore(t, big, big, big, big)

	text, err := NewGenerator(st, "proj").Generate(Options{Budget: 1500})
	require.NoError(t, err)

	// at least one stub always makes it in, but not all four fit
	count := strings.Count(text, "### padded session")
	assert.GreaterOrEqual(t, count, 1)
	assert.Less(t, count, 4)
}

func TestGenerateEmptyStore(t *testing.T) {
	st := seedStore(t)

	_, err := NewGenerator(st, "proj").Generate(Options{})
	assert.Error(t, err)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 100, EstimateTokens(strings.Repeat("x", 350)))
}
