package driven

import "github.com/custodia-labs/meetsearch/internal/core/domain"

// ChunkStore persists the ordered chunk-record sequence that mirrors
// the vector index. Records are append-only and position-addressed;
// record i describes vector i.
type ChunkStore interface {
	// Append adds records at the end of the sequence.
	Append(records []domain.ChunkRecord)

	// Get returns the record at the given position.
	Get(position int) (domain.ChunkRecord, bool)

	// All returns every record in stored order.
	All() []domain.ChunkRecord

	// Len returns the number of stored records.
	Len() int

	// Save persists the sequence to disk.
	Save() error
}

// SessionStore persists session records, one directory per session.
type SessionStore interface {
	// CreateDirs allocates the session directory and its nested search
	// index directory, returning the index path.
	CreateDirs(sessionID string) (indexPath string, err error)

	// Save writes the session record.
	Save(session *domain.Session) error

	// Load reads a session record. Returns domain.ErrNotFound when the
	// record does not exist or cannot be read.
	Load(sessionID string) (*domain.Session, error)

	// Delete removes the session directory tree (record + index).
	Delete(sessionID string) error

	// DeleteAll removes every session directory.
	DeleteAll() error

	// ListIDs returns the session IDs present on disk.
	ListIDs() ([]string, error)

	// Root returns the sessions directory.
	Root() string
}
