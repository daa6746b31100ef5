package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/meetsearch/internal/core/domain"
	"github.com/custodia-labs/meetsearch/internal/core/ports/driven"
	"github.com/custodia-labs/meetsearch/internal/core/ports/driving"
	"github.com/custodia-labs/meetsearch/internal/logger"
)

// Ensure SessionManager implements the interface.
var _ driving.SessionService = (*SessionManager)(nil)

// DefaultSessionTimeout is the idle time after which a session expires.
const DefaultSessionTimeout = time.Hour

// EngineFactory builds a search engine rooted at an index directory.
// The session manager calls it once per session and caches the result.
type EngineFactory func(indexPath string) (driving.SearchService, error)

// SessionManager owns the collection of independent sessions. Each
// session gets its own on-disk directory and its own search engine, so
// one session's vectors are never visible to another. All shared state
// sits behind one mutex.
type SessionManager struct {
	mu        sync.Mutex
	store     driven.SessionStore
	newEngine EngineFactory
	timeout   time.Duration
	active    map[string]*domain.Session
	engines   map[string]driving.SearchService
	now       func() time.Time
}

// ManagerOption configures a SessionManager.
type ManagerOption func(*SessionManager)

// WithSessionTimeout sets the idle expiry timeout.
func WithSessionTimeout(d time.Duration) ManagerOption {
	return func(m *SessionManager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithClock overrides the time source. Useful for testing expiry.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *SessionManager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewSessionManager creates a session manager over the given store and
// engine factory. Sessions already expired on disk are swept
// immediately; directories without a readable session record are left
// untouched.
func NewSessionManager(store driven.SessionStore, newEngine EngineFactory, opts ...ManagerOption) *SessionManager {
	m := &SessionManager{
		store:     store,
		newEngine: newEngine,
		timeout:   DefaultSessionTimeout,
		active:    make(map[string]*domain.Session),
		engines:   make(map[string]driving.SearchService),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.sweepExpired()
	return m
}

// CreateSession mints a new session, allocates its directories,
// persists the record and returns the ID.
func (m *SessionManager) CreateSession() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()

	indexPath, err := m.store.CreateDirs(id)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	now := m.now()
	session := &domain.Session{
		ID:              id,
		CreatedAt:       now,
		LastActivity:    now,
		Meetings:        []domain.Meeting{},
		SearchIndexPath: indexPath,
	}

	if err := m.store.Save(session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	m.active[id] = session
	logger.Info("Created session %s", id)
	return id, nil
}

// GetSession returns the session and refreshes its activity timestamp.
// A session absent from memory is promoted from disk unless expired.
func (m *SessionManager) GetSession(sessionID string) (*domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getSessionLocked(sessionID)
}

func (m *SessionManager) getSessionLocked(sessionID string) (*domain.Session, bool) {
	if session, ok := m.active[sessionID]; ok {
		m.touchLocked(session)
		return session, true
	}

	session, err := m.store.Load(sessionID)
	if err != nil {
		return nil, false
	}
	if session.Expired(m.timeout, m.now()) {
		return nil, false
	}

	m.active[sessionID] = session
	m.touchLocked(session)
	return session, true
}

// touchLocked refreshes and persists the activity timestamp. The
// persisted timestamp is what survives a restart, so a lookup that is
// not written back would let the sweep expire a session still in use.
func (m *SessionManager) touchLocked(session *domain.Session) {
	session.LastActivity = m.now()
	if err := m.store.Save(session); err != nil {
		logger.Warn("Persisting activity for session %s: %v", session.ID, err)
	}
}

// AddMeeting stamps the meeting with the session ID and timestamp,
// appends it to the session record and persists the record. Indexing
// is a separate step on the session's engine; both must succeed for
// the meeting to be searchable and listable.
func (m *SessionManager) AddMeeting(sessionID string, meeting domain.Meeting) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.getSessionLocked(sessionID)
	if !ok {
		return fmt.Errorf("add meeting: session %s: %w", sessionID, domain.ErrNotFound)
	}

	meeting.SessionID = sessionID
	meeting.AddedAt = m.now()
	session.Meetings = append(session.Meetings, meeting)

	if err := m.store.Save(session); err != nil {
		return fmt.Errorf("persist session %s: %w", sessionID, err)
	}

	logger.Info("Added meeting %q to session %s", meeting.Title, sessionID)
	return nil
}

// SessionMeetings returns the session's meetings in added order.
func (m *SessionManager) SessionMeetings(sessionID string) []domain.Meeting {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.getSessionLocked(sessionID)
	if !ok {
		return nil
	}
	return session.Meetings
}

// EngineFor lazily builds and caches the session's search engine,
// rooted at the session's index directory.
func (m *SessionManager) EngineFor(sessionID string) (driving.SearchService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if engine, ok := m.engines[sessionID]; ok {
		return engine, nil
	}

	session, ok := m.getSessionLocked(sessionID)
	if !ok {
		return nil, fmt.Errorf("engine for session %s: %w", sessionID, domain.ErrNotFound)
	}

	engine, err := m.newEngine(session.SearchIndexPath)
	if err != nil {
		return nil, fmt.Errorf("build engine for session %s: %w", sessionID, err)
	}

	m.engines[sessionID] = engine
	logger.Debug("Created search engine for session %s", sessionID)
	return engine, nil
}

// SessionStats summarises one session.
func (m *SessionManager) SessionStats(sessionID string) (domain.SessionStats, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.getSessionLocked(sessionID)
	if !ok {
		return domain.SessionStats{}, false
	}

	return domain.SessionStats{
		SessionID:     sessionID,
		TotalMeetings: len(session.Meetings),
		CreatedAt:     session.CreatedAt,
		LastActivity:  session.LastActivity,
	}, true
}

// Info summarises the manager's state.
func (m *SessionManager) Info() domain.ManagerInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	onDisk := 0
	if ids, err := m.store.ListIDs(); err == nil {
		onDisk = len(ids)
	}

	return domain.ManagerInfo{
		SessionsOnDisk: onDisk,
		ActiveSessions: len(m.active),
		CachedEngines:  len(m.engines),
		SessionsDir:    m.store.Root(),
		SessionTimeout: m.timeout,
	}
}

// DeleteSession removes the session from memory and disk together with
// its cached engine. The directory tree disappears as a whole; no
// orphaned index files are left behind.
func (m *SessionManager) DeleteSession(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteSessionLocked(sessionID)
}

func (m *SessionManager) deleteSessionLocked(sessionID string) error {
	delete(m.active, sessionID)

	if engine, ok := m.engines[sessionID]; ok {
		if err := engine.Close(); err != nil {
			logger.Warn("Closing engine for session %s: %v", sessionID, err)
		}
		delete(m.engines, sessionID)
	}

	if err := m.store.Delete(sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}

	logger.Info("Deleted session %s", sessionID)
	return nil
}

// ClearAll removes every session and cached engine.
func (m *SessionManager) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, engine := range m.engines {
		if err := engine.Close(); err != nil {
			logger.Warn("Closing engine for session %s: %v", id, err)
		}
	}
	m.active = make(map[string]*domain.Session)
	m.engines = make(map[string]driving.SearchService)

	if err := m.store.DeleteAll(); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}

	logger.Info("Cleared all sessions")
	return nil
}

// sweepExpired deletes on-disk sessions that are provably expired.
// Directories without a readable record are preserved: data that
// cannot be proven expired is never deleted.
func (m *SessionManager) sweepExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids, err := m.store.ListIDs()
	if err != nil {
		logger.Warn("Session sweep: %v", err)
		return
	}

	for _, id := range ids {
		session, err := m.store.Load(id)
		if err != nil {
			continue
		}
		if session.Expired(m.timeout, m.now()) {
			if err := m.deleteSessionLocked(id); err != nil {
				logger.Warn("Session sweep: %v", err)
			}
		}
	}
}
