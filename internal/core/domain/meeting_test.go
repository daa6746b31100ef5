package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContentType_Valid(t *testing.T) {
	for _, ct := range AllContentTypes {
		assert.True(t, ct.Valid(), string(ct))
	}

	assert.False(t, ContentType("minutes").Valid())
	assert.False(t, ContentType("").Valid())
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	session := &Session{LastActivity: now.Add(-30 * time.Minute)}

	assert.False(t, session.Expired(time.Hour, now))
	assert.True(t, session.Expired(10*time.Minute, now))
	// Exactly at the boundary is not expired.
	assert.False(t, session.Expired(30*time.Minute, now))
}
