package domain

// SearchFilters narrows search results after vector retrieval.
// All fields are optional; zero values disable the filter.
type SearchFilters struct {
	// ContentTypes restricts results to the given types.
	ContentTypes []ContentType

	// DateFrom filters out meetings before this ISO-8601 date.
	// Unparsable dates fail open: the candidate is kept.
	DateFrom string

	// DateTo filters out meetings after this ISO-8601 date.
	DateTo string

	// Participants keeps only chunks relevant to at least one of the
	// named participants (see RelevanceScorer).
	Participants []string

	// MinRelevance drops results scoring below this value when set.
	MinRelevance *float64
}

// SearchResult is a single ranked search hit.
type SearchResult struct {
	MeetingID      string      `json:"meeting_id"`
	MeetingTitle   string      `json:"meeting_title"`
	MeetingDate    string      `json:"meeting_date"`
	ContentType    ContentType `json:"content_type"`
	Text           string      `json:"text"`
	Participants   []string    `json:"participants"`
	RelevanceScore float64     `json:"relevance_score"`
	Snippet        string      `json:"snippet"`
}

// SimilarMeeting is a meeting ranked by its aggregate chunk-level
// similarity to a reference meeting.
type SimilarMeeting struct {
	MeetingID            string        `json:"meeting_id"`
	MeetingTitle         string        `json:"meeting_title"`
	MeetingDate          string        `json:"meeting_date"`
	Participants         []string      `json:"participants"`
	AverageSimilarity    float64       `json:"average_similarity"`
	MatchingContentTypes []ContentType `json:"matching_content_types"`
}

// IndexStats summarises the state of one search index.
type IndexStats struct {
	// TotalChunks is the number of indexed chunks.
	TotalChunks int `json:"total_chunks"`

	// TotalMeetings is the number of distinct meetings.
	TotalMeetings int `json:"total_meetings"`

	// ContentTypeCounts maps each content type to its chunk count.
	ContentTypeCounts map[ContentType]int `json:"content_type_counts"`

	// IndexSizeBytes is the approximate on-disk size of the vector file.
	IndexSizeBytes int64 `json:"index_size_bytes"`

	// EmbeddingDimension is the vector dimension of the index.
	EmbeddingDimension int `json:"embedding_dimension"`

	// ModelName identifies the embedding model.
	ModelName string `json:"model_name"`

	// CappedTranscripts counts meetings whose transcript chunking hit
	// the configured chunk cap. Content past the cap is not indexed.
	CappedTranscripts int `json:"capped_transcripts"`
}

// DateRange is the span of meeting dates covered by an index.
type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}
