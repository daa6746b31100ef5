// Package file provides file-based storage adapters: the chunk
// metadata store and the session record store.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/meetsearch/internal/core/domain"
	"github.com/custodia-labs/meetsearch/internal/core/ports/driven"
	"github.com/custodia-labs/meetsearch/internal/logger"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// MetadataFileName is the on-disk file name of the chunk records.
const MetadataFileName = "metadata.json"

// ChunkStore keeps the ordered chunk-record sequence, persisted as a
// human-readable JSON array. Record i describes vector i of the
// accompanying vector index.
type ChunkStore struct {
	mu       sync.RWMutex
	filePath string
	records  []domain.ChunkRecord
}

// NewChunkStore creates a chunk store persisted under dir. An existing
// metadata file is loaded; a corrupt or missing file yields an empty
// store.
func NewChunkStore(dir string) (*ChunkStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("chunkstore: create dir: %w", err)
	}

	s := &ChunkStore{
		filePath: filepath.Join(dir, MetadataFileName),
	}

	if err := s.load(); err != nil {
		logger.Warn("Could not load chunk metadata from %s: %v (starting empty)", s.filePath, err)
		s.records = nil
	}

	return s, nil
}

// Append adds records at the end of the sequence.
func (s *ChunkStore) Append(records []domain.ChunkRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// Get returns the record at the given position.
func (s *ChunkStore) Get(position int) (domain.ChunkRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if position < 0 || position >= len(s.records) {
		return domain.ChunkRecord{}, false
	}
	return s.records[position], true
}

// All returns every record in stored order.
func (s *ChunkStore) All() []domain.ChunkRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ChunkRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of stored records.
func (s *ChunkStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Save persists the sequence to disk via a temporary file and rename.
func (s *ChunkStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.records
	if records == nil {
		records = []domain.ChunkRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("chunkstore: marshal: %w", err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("chunkstore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("chunkstore: rename: %w", err)
	}

	return nil
}

func (s *ChunkStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var records []domain.ChunkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse metadata: %w", err)
	}

	s.records = records
	logger.Debug("Loaded chunk metadata: %d records", len(records))
	return nil
}
