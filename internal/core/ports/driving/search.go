// Package driving provides interfaces for application entry points (primary/inbound ports).
package driving

import (
	"context"

	"github.com/custodia-labs/meetsearch/internal/core/domain"
)

// SearchService is one session's meeting search engine. An instance
// owns a single vector index and chunk store persisted under one
// directory and must not be shared across sessions.
type SearchService interface {
	// AddMeeting decomposes a meeting into typed chunks, embeds them
	// and commits vectors and records together. Returns
	// domain.ErrNoContent when the meeting has nothing to index; no
	// state is mutated in that case.
	AddMeeting(ctx context.Context, meeting domain.Meeting) error

	// Search returns up to topK results ranked by similarity, after
	// applying the given filters. An empty index yields an empty
	// slice, not an error.
	Search(ctx context.Context, query string, topK int, filters domain.SearchFilters) ([]domain.SearchResult, error)

	// MeetingChunks returns all chunks of one meeting in stored order.
	MeetingChunks(meetingID string) []domain.ChunkRecord

	// SimilarMeetings ranks other meetings by average chunk similarity
	// to the given meeting. The reference meeting is never included.
	SimilarMeetings(ctx context.Context, meetingID string, topK int) ([]domain.SimilarMeeting, error)

	// Statistics summarises the index.
	Statistics() domain.IndexStats

	// AllParticipants returns the distinct participant names across
	// all indexed chunks, sorted.
	AllParticipants() []string

	// MeetingDateRange returns the earliest and latest meeting dates.
	MeetingDateRange() domain.DateRange

	// Close releases index resources.
	Close() error
}
