package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, 8, cfg.Chunking.TargetChunks)
	assert.Equal(t, time.Hour, cfg.Sessions.Timeout())
}

func TestLoad_FullFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[embedding]
provider = "openai"
model = "text-embedding-3-small"
dimensions = 512

[chunking]
target_chunks = 4
min_chunk_size = 400
overlap = 100

[search]
snippet_length = 150

[sessions]
dir = "/tmp/meetsearch-sessions"
timeout_minutes = 30
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(content), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, 512, cfg.Embedding.Dimensions)
	assert.Equal(t, 4, cfg.Chunking.TargetChunks)
	assert.Equal(t, 400, cfg.Chunking.MinChunkSize)
	assert.Equal(t, 100, cfg.Chunking.Overlap)
	assert.Equal(t, 150, cfg.Search.SnippetLength)
	assert.Equal(t, "/tmp/meetsearch-sessions", cfg.Sessions.Dir)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.Timeout())
}

func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[embedding]
model = "nomic-embed-text"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(content), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, 800, cfg.Chunking.MinChunkSize)
	assert.Equal(t, 200, cfg.Search.SnippetLength)
	assert.Equal(t, 60, cfg.Sessions.TimeoutMinutes)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("not = [valid"), 0600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Embedding.Provider = "openai"
	cfg.Sessions.TimeoutMinutes = 15
	require.NoError(t, cfg.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
