package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultTopics(), cfg.Topics)
}

func TestLoadOverridesTopics(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".learnlog.yml"),
		[]byte("topics:\n  - ship\n  - benchmark\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"ship", "benchmark"}, cfg.Topics)
}

func TestLoadEmptyTopicsKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".learnlog.yml"),
		[]byte("topics: []\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultTopics(), cfg.Topics)
}

func TestLoadMalformedFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".learnlog.yml"),
		[]byte("topics: [unclosed\n"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Equal(t, DefaultTopics(), cfg.Topics)
}
