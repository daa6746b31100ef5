package driven

import "context"

// VectorIndex provides semantic similarity search over inner-product
// (cosine) similarity. The index is append-only: vectors are stored in
// insertion order and position i in the index corresponds to record i
// in the chunk store. Deletion is deliberately absent.
type VectorIndex interface {
	// Append inserts vectors at the end of the index, preserving order.
	Append(ctx context.Context, vectors [][]float32) error

	// Search finds the k most similar vectors to the query.
	// Hits are ordered by descending similarity; ties break on
	// ascending position so results are deterministic.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of stored vectors.
	Len() int

	// Dimensions returns the vector dimension of the index.
	Dimensions() int

	// Save persists the index to disk.
	Save() error

	// SizeOnDisk returns the approximate persisted size in bytes.
	SizeOnDisk() int64

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Position is the insertion position of the matched vector.
	Position int

	// Similarity is the cosine similarity score.
	Similarity float64
}
