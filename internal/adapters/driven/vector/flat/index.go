// Package flat provides an exact inner-product vector index backed by
// a flat in-memory matrix with binary file persistence.
//
// Vectors are stored in insertion order; position i in the index
// corresponds to chunk record i in the metadata store. The index is
// append-only.
package flat

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/custodia-labs/meetsearch/internal/core/domain"
	"github.com/custodia-labs/meetsearch/internal/core/ports/driven"
	"github.com/custodia-labs/meetsearch/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// IndexFileName is the on-disk file name of the serialized index.
const IndexFileName = "faiss.index"

// File header constants.
const (
	fileMagic   = uint32(0x4d53_4931) // "MSI1"
	fileVersion = uint32(1)
)

// Index provides exact nearest-neighbour search over inner product.
// Queries and stored vectors are expected to be unit-normalized, which
// makes inner product equal cosine similarity.
type Index struct {
	mu        sync.RWMutex
	path      string
	dimension int
	vectors   [][]float32
	closed    bool
}

// New creates or opens a flat index persisted at path. A readable
// existing file is loaded; a corrupt or missing file yields a fresh
// empty index (availability over durability - prior vectors are lost
// if the file is damaged).
func New(path string, dimension int) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("flat: %w: path cannot be empty", domain.ErrInvalidInput)
	}
	if dimension <= 0 {
		return nil, fmt.Errorf("flat: %w: dimension must be positive", domain.ErrInvalidInput)
	}

	idx := &Index{
		path:      path,
		dimension: dimension,
	}

	if err := idx.load(); err != nil {
		logger.Warn("Could not load vector index from %s: %v (starting empty)", path, err)
		idx.vectors = nil
	}

	return idx, nil
}

// Append inserts vectors at the end of the index, preserving order.
func (idx *Index) Append(_ context.Context, vectors [][]float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return fmt.Errorf("flat: %w", domain.ErrIndexClosed)
	}

	for _, v := range vectors {
		if len(v) != idx.dimension {
			return fmt.Errorf("flat: %w: got %d, want %d", domain.ErrDimensionMismatch, len(v), idx.dimension)
		}
	}

	for _, v := range vectors {
		stored := make([]float32, len(v))
		copy(stored, v)
		idx.vectors = append(idx.vectors, stored)
	}

	return nil
}

// Search finds the k most similar vectors to the query. Hits are
// ordered by descending similarity with ties broken by ascending
// insertion position.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return nil, fmt.Errorf("flat: %w", domain.ErrIndexClosed)
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("flat: %w: got %d, want %d", domain.ErrDimensionMismatch, len(query), idx.dimension)
	}
	if k <= 0 || len(idx.vectors) == 0 {
		return nil, nil
	}

	hits := make([]driven.VectorHit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = driven.VectorHit{
			Position:   i,
			Similarity: dot(query, v),
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].Position < hits[j].Position
	})

	if k < len(hits) {
		hits = hits[:k]
	}

	return hits, nil
}

// Len returns the number of stored vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Dimensions returns the vector dimension of the index.
func (idx *Index) Dimensions() int {
	return idx.dimension
}

// Save persists the index to disk. The file is written whole via a
// temporary file and rename so readers never see a partial index.
func (idx *Index) Save() error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return fmt.Errorf("flat: %w", domain.ErrIndexClosed)
	}

	tmp := idx.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("flat: create %s: %w", tmp, err)
	}

	w := bufio.NewWriter(f)
	if err := idx.write(w); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flat: write index: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flat: flush index: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("flat: close index file: %w", err)
	}

	if err := os.Rename(tmp, idx.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("flat: rename index file: %w", err)
	}

	return nil
}

// SizeOnDisk returns the persisted file size in bytes, or 0 when the
// index has never been saved.
func (idx *Index) SizeOnDisk() int64 {
	info, err := os.Stat(idx.path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// Close releases resources.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.closed = true
	idx.vectors = nil
	return nil
}

func (idx *Index) write(w *bufio.Writer) error {
	header := []uint32{fileMagic, fileVersion, uint32(idx.dimension), uint32(len(idx.vectors))}
	for _, h := range header {
		if err := binary.Write(w, binary.LittleEndian, h); err != nil {
			return err
		}
	}
	for _, v := range idx.vectors {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func (idx *Index) load() error {
	f, err := os.Open(idx.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magic, version, dim, count uint32
	for _, p := range []*uint32{&magic, &version, &dim, &count} {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return fmt.Errorf("read header: %w", err)
		}
	}

	if magic != fileMagic {
		return fmt.Errorf("bad magic %#x", magic)
	}
	if version != fileVersion {
		return fmt.Errorf("unsupported version %d", version)
	}
	if int(dim) != idx.dimension {
		return fmt.Errorf("stored dimension %d does not match configured %d", dim, idx.dimension)
	}

	vectors := make([][]float32, 0, count)
	for i := uint32(0); i < count; i++ {
		v := make([]float32, dim)
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("read vector %d: %w", i, err)
		}
		vectors = append(vectors, v)
	}

	idx.vectors = vectors
	logger.Debug("Loaded vector index: %d vectors, dim=%d", len(vectors), dim)
	return nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
