package domain

import "time"

// Session is an isolated user session. Each session owns its own
// search index directory; no two sessions share a path.
type Session struct {
	// ID is the opaque session token.
	ID string `json:"id"`

	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"created_at"`

	// LastActivity is refreshed on every session lookup.
	LastActivity time.Time `json:"last_activity"`

	// Meetings are the submissions added to this session, in order.
	Meetings []Meeting `json:"meetings"`

	// SearchIndexPath is the directory of the session's search index.
	SearchIndexPath string `json:"search_index_path"`
}

// Expired reports whether the session has been idle longer than timeout.
func (s *Session) Expired(timeout time.Duration, now time.Time) bool {
	return now.Sub(s.LastActivity) > timeout
}

// SessionStats summarises one session.
type SessionStats struct {
	SessionID     string    `json:"session_id"`
	TotalMeetings int       `json:"total_meetings"`
	CreatedAt     time.Time `json:"created_at"`
	LastActivity  time.Time `json:"last_activity"`
}

// ManagerInfo summarises the session manager's state.
type ManagerInfo struct {
	SessionsOnDisk int           `json:"sessions_on_disk"`
	ActiveSessions int           `json:"active_sessions"`
	CachedEngines  int           `json:"cached_engines"`
	SessionsDir    string        `json:"sessions_dir"`
	SessionTimeout time.Duration `json:"session_timeout"`
}
