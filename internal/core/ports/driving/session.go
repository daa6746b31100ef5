package driving

import "github.com/custodia-labs/meetsearch/internal/core/domain"

// SessionService manages isolated user sessions, each bound to its own
// search engine and on-disk directory.
type SessionService interface {
	// CreateSession mints a new session and returns its ID.
	CreateSession() (string, error)

	// GetSession returns the session and refreshes its activity
	// timestamp. Sessions absent from memory are loaded from disk if
	// not expired.
	GetSession(sessionID string) (*domain.Session, bool)

	// AddMeeting appends a meeting to the session record and persists
	// it. It does not index the meeting; callers must also invoke
	// AddMeeting on the session's engine for the content to be
	// searchable.
	AddMeeting(sessionID string, meeting domain.Meeting) error

	// SessionMeetings returns the session's meetings in added order.
	SessionMeetings(sessionID string) []domain.Meeting

	// EngineFor lazily builds and caches the session's search engine.
	EngineFor(sessionID string) (SearchService, error)

	// SessionStats summarises one session.
	SessionStats(sessionID string) (domain.SessionStats, bool)

	// Info summarises the manager's state.
	Info() domain.ManagerInfo

	// DeleteSession removes the session from memory and disk together
	// with its cached engine.
	DeleteSession(sessionID string) error

	// ClearAll removes every session and cached engine.
	ClearAll() error
}
