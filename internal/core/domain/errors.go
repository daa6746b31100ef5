package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoContent indicates a meeting produced no indexable text.
	// Nothing is committed when this is returned.
	ErrNoContent = errors.New("no searchable content")

	// ErrSessionExpired indicates the session has passed its idle timeout.
	ErrSessionExpired = errors.New("session expired")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Indexing and semantic search are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not
	// configured. Indexing and semantic search are disabled without it.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrIndexClosed indicates an operation on a closed index.
	ErrIndexClosed = errors.New("index closed")

	// ErrDimensionMismatch indicates a vector of the wrong dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
