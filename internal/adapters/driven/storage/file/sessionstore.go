package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/meetsearch/internal/core/domain"
	"github.com/custodia-labs/meetsearch/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionFileName is the per-session record file name.
const SessionFileName = "session.json"

// SearchIndexDirName is the per-session search index subdirectory.
const SearchIndexDirName = "search_index"

// SessionStore persists session records under a root directory, one
// subdirectory per session:
//
//	root/{session_id}/session.json
//	root/{session_id}/search_index/
type SessionStore struct {
	root string
}

// NewSessionStore creates a session store rooted at dir.
func NewSessionStore(dir string) (*SessionStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("sessionstore: create root: %w", err)
	}
	return &SessionStore{root: dir}, nil
}

// CreateDirs allocates the session directory and its nested search
// index directory, returning the index path.
func (s *SessionStore) CreateDirs(sessionID string) (string, error) {
	indexPath := filepath.Join(s.root, sessionID, SearchIndexDirName)
	if err := os.MkdirAll(indexPath, 0700); err != nil {
		return "", fmt.Errorf("sessionstore: create session dirs: %w", err)
	}
	return indexPath, nil
}

// Save writes the session record via a temporary file and rename.
func (s *SessionStore) Save(session *domain.Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("sessionstore: marshal session: %w", err)
	}

	path := filepath.Join(s.root, session.ID, SessionFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("sessionstore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("sessionstore: rename: %w", err)
	}

	return nil
}

// Load reads a session record. Returns domain.ErrNotFound when the
// record is absent or unreadable.
func (s *SessionStore) Load(sessionID string) (*domain.Session, error) {
	path := filepath.Join(s.root, sessionID, SessionFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sessionstore: %w: %s", domain.ErrNotFound, sessionID)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("sessionstore: %w: %s: corrupt record", domain.ErrNotFound, sessionID)
	}

	return &session, nil
}

// Delete removes the session directory tree.
func (s *SessionStore) Delete(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionstore: %w: empty session id", domain.ErrInvalidInput)
	}
	if err := os.RemoveAll(filepath.Join(s.root, sessionID)); err != nil {
		return fmt.Errorf("sessionstore: delete session %s: %w", sessionID, err)
	}
	return nil
}

// DeleteAll removes every session directory and recreates the root.
func (s *SessionStore) DeleteAll() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("sessionstore: delete all: %w", err)
	}
	if err := os.MkdirAll(s.root, 0700); err != nil {
		return fmt.Errorf("sessionstore: recreate root: %w", err)
	}
	return nil
}

// ListIDs returns the session IDs present on disk.
func (s *SessionStore) ListIDs() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("sessionstore: list: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}

// Root returns the sessions directory.
func (s *SessionStore) Root() string {
	return s.root
}
