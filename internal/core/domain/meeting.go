// Package domain contains the core business entities for meetsearch.
package domain

import "time"

// ContentType classifies an indexed chunk by the kind of meeting
// content it was extracted from.
type ContentType string

// The closed set of content types. Filter logic switches exhaustively
// over these values.
const (
	ContentTypeTranscript ContentType = "transcript"
	ContentTypeSummary    ContentType = "summary"
	ContentTypeActionItem ContentType = "action_item"
	ContentTypeDecision   ContentType = "decision"
	ContentTypeTimeline   ContentType = "timeline"
)

// AllContentTypes lists every valid content type.
var AllContentTypes = []ContentType{
	ContentTypeTranscript,
	ContentTypeSummary,
	ContentTypeActionItem,
	ContentTypeDecision,
	ContentTypeTimeline,
}

// Valid reports whether c is a known content type.
func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeTranscript, ContentTypeSummary, ContentTypeActionItem,
		ContentTypeDecision, ContentTypeTimeline:
		return true
	}
	return false
}

// ActionItem is a structured action item produced by the NLP
// extraction collaborator.
type ActionItem struct {
	Text       string  `json:"text"`
	Assignee   string  `json:"assignee,omitempty"`
	Deadline   string  `json:"deadline,omitempty"`
	Category   string  `json:"category,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// TimelineEntry is a dated reference extracted from a transcript.
type TimelineEntry struct {
	Timeline   string  `json:"timeline"`
	Context    string  `json:"context,omitempty"`
	Type       string  `json:"type,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Meeting is a meeting submission: the transcript plus the structured
// insights derived from it by external collaborators. It is the input
// to indexing and is not stored verbatim in the search index; it is
// decomposed into ChunkRecords.
type Meeting struct {
	// ID is the unique meeting identifier.
	ID string `json:"id"`

	// Title is the human-readable meeting title.
	Title string `json:"title"`

	// Date is the meeting date as an ISO-8601 string.
	Date string `json:"date"`

	// Transcript is the full transcript text.
	Transcript string `json:"transcript"`

	// Summary is the derived meeting summary.
	Summary string `json:"summary,omitempty"`

	// ActionItems are the extracted action items.
	ActionItems []ActionItem `json:"action_items,omitempty"`

	// KeyDecisions are the extracted decision statements.
	KeyDecisions []string `json:"key_decisions,omitempty"`

	// Timelines are the extracted timeline references.
	Timelines []TimelineEntry `json:"timelines,omitempty"`

	// Participants are the detected participant names, in detection order.
	Participants []string `json:"participants,omitempty"`

	// Filename is the original upload filename, if any.
	Filename string `json:"filename,omitempty"`

	// Language is the detected transcript language.
	Language string `json:"language,omitempty"`

	// Duration is the recording length in seconds.
	Duration float64 `json:"duration,omitempty"`

	// SessionID is stamped when the meeting is added to a session.
	SessionID string `json:"session_id,omitempty"`

	// AddedAt is stamped when the meeting is added to a session.
	AddedAt time.Time `json:"added_at,omitzero"`
}

// ChunkRecord is one indexed text fragment. Records are stored in an
// ordered sequence aligned with the vector index: IndexPosition equals
// the record's offset in both structures.
type ChunkRecord struct {
	MeetingID     string      `json:"meeting_id"`
	MeetingTitle  string      `json:"meeting_title"`
	MeetingDate   string      `json:"meeting_date"`
	ContentType   ContentType `json:"content_type"`
	Text          string      `json:"text"`
	Participants  []string    `json:"participants"`
	IndexPosition int         `json:"index_position"`
}
