package flat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex(t *testing.T, dim int) (*Index, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), IndexFileName)
	idx, err := New(path, dim)
	require.NoError(t, err)
	return idx, path
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", 4)
	assert.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "x"), 0)
	assert.Error(t, err)
}

func TestAppendAndSearch(t *testing.T) {
	idx, _ := testIndex(t, 3)
	ctx := context.Background()

	err := idx.Append(ctx, [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	hits, err := idx.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, 0, hits[0].Position)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
	assert.Greater(t, hits[0].Similarity, hits[1].Similarity)
}

func TestSearch_TiesBreakOnInsertionOrder(t *testing.T) {
	idx, _ := testIndex(t, 2)
	ctx := context.Background()

	// Identical vectors: ordering must be deterministic by position.
	require.NoError(t, idx.Append(ctx, [][]float32{
		{1, 0},
		{1, 0},
		{1, 0},
	}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	for i, hit := range hits {
		assert.Equal(t, i, hit.Position)
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	idx, _ := testIndex(t, 2)

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestAppend_DimensionMismatch(t *testing.T) {
	idx, _ := testIndex(t, 3)

	err := idx.Append(context.Background(), [][]float32{{1, 0}})
	assert.Error(t, err)
	assert.Equal(t, 0, idx.Len(), "failed append must not mutate the index")
}

func TestSaveAndLoad(t *testing.T) {
	idx, path := testIndex(t, 2)
	ctx := context.Background()

	require.NoError(t, idx.Append(ctx, [][]float32{{1, 0}, {0, 1}}))
	require.NoError(t, idx.Save())
	assert.Greater(t, idx.SizeOnDisk(), int64(0))

	reloaded, err := New(path, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())

	hits, err := reloaded.Search(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Position)
}

func TestLoad_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), IndexFileName)
	require.NoError(t, os.WriteFile(path, []byte("not an index"), 0600))

	idx, err := New(path, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
}

func TestLoad_DimensionChangeStartsEmpty(t *testing.T) {
	idx, path := testIndex(t, 2)
	require.NoError(t, idx.Append(context.Background(), [][]float32{{1, 0}}))
	require.NoError(t, idx.Save())

	reloaded, err := New(path, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Len())
}

func TestClosedIndex(t *testing.T) {
	idx, _ := testIndex(t, 2)
	require.NoError(t, idx.Close())

	assert.Error(t, idx.Append(context.Background(), [][]float32{{1, 0}}))

	_, err := idx.Search(context.Background(), []float32{1, 0}, 1)
	assert.Error(t, err)
}
