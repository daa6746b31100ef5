package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/meetsearch/internal/chunker"
	"github.com/custodia-labs/meetsearch/internal/core/domain"
	"github.com/custodia-labs/meetsearch/internal/core/ports/driven"
	"github.com/custodia-labs/meetsearch/internal/core/ports/driving"
	"github.com/custodia-labs/meetsearch/internal/logger"
)

// Ensure SearchEngine implements the interface.
var _ driving.SearchService = (*SearchEngine)(nil)

// DefaultTopK is the default result count for search.
const DefaultTopK = 10

// DefaultSimilarTopK is the default result count for similar meetings.
const DefaultSimilarTopK = 5

// similarQueryLimit caps the transcript prefix used as the
// representative query for similar-meeting ranking.
const similarQueryLimit = 500

// SearchEngine indexes meeting content and serves filtered semantic
// search over it. One engine owns one vector index and one chunk
// store, persisted under one directory; the two are always mutated
// together so that record i describes vector i.
//
// AddMeeting is serialized against all other calls on the same engine;
// reads run concurrently with each other and never observe a
// half-committed insert.
type SearchEngine struct {
	mu        sync.RWMutex
	index     driven.VectorIndex
	chunks    driven.ChunkStore
	embedder  driven.EmbeddingService
	chunker   *chunker.Chunker
	relevance *RelevanceScorer

	snippetLength int
}

// EngineOption configures a SearchEngine.
type EngineOption func(*SearchEngine)

// WithChunker sets the transcript chunker.
func WithChunker(c *chunker.Chunker) EngineOption {
	return func(e *SearchEngine) {
		if c != nil {
			e.chunker = c
		}
	}
}

// WithSnippetLength sets the snippet window size in characters.
func WithSnippetLength(n int) EngineOption {
	return func(e *SearchEngine) {
		if n > 0 {
			e.snippetLength = n
		}
	}
}

// NewSearchEngine creates a search engine over the given index, chunk
// store and embedding service. The embedder may be nil, in which case
// indexing fails with a typed error and searches return empty results.
func NewSearchEngine(
	index driven.VectorIndex,
	chunks driven.ChunkStore,
	embedder driven.EmbeddingService,
	opts ...EngineOption,
) *SearchEngine {
	e := &SearchEngine{
		index:         index,
		chunks:        chunks,
		embedder:      embedder,
		chunker:       chunker.New(),
		relevance:     NewRelevanceScorer(),
		snippetLength: DefaultSnippetLength,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// AddMeeting decomposes the meeting into typed chunks, embeds them in
// one batch and commits vectors and records together. Nothing is
// committed on failure, so the index and the chunk store can never go
// out of alignment.
func (e *SearchEngine) AddMeeting(ctx context.Context, meeting domain.Meeting) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.embedder == nil {
		return fmt.Errorf("add meeting: %w", domain.ErrEmbeddingUnavailable)
	}
	if e.index == nil || e.chunks == nil {
		return fmt.Errorf("add meeting: %w", domain.ErrVectorIndexUnavailable)
	}

	logger.Section("Index Meeting")
	logger.Debug("Meeting %q (%s)", meeting.Title, meeting.ID)

	texts, types := e.extractContent(meeting)
	if len(texts) == 0 {
		logger.Warn("Meeting %s has no searchable content", meeting.ID)
		return fmt.Errorf("add meeting %s: %w", meeting.ID, domain.ErrNoContent)
	}

	vectors, err := e.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed meeting %s: %w", meeting.ID, err)
	}
	for _, v := range vectors {
		normalize(v)
	}

	base := e.chunks.Len()
	records := make([]domain.ChunkRecord, len(texts))
	for i, text := range texts {
		records[i] = domain.ChunkRecord{
			MeetingID:     meeting.ID,
			MeetingTitle:  meeting.Title,
			MeetingDate:   meeting.Date,
			ContentType:   types[i],
			Text:          text,
			Participants:  meeting.Participants,
			IndexPosition: base + i,
		}
	}

	if err := e.index.Append(ctx, vectors); err != nil {
		return fmt.Errorf("append vectors for meeting %s: %w", meeting.ID, err)
	}
	e.chunks.Append(records)

	if err := e.index.Save(); err != nil {
		return fmt.Errorf("persist vector index: %w", err)
	}
	if err := e.chunks.Save(); err != nil {
		return fmt.Errorf("persist chunk metadata: %w", err)
	}

	if e.chunker.Capped(meeting.Transcript) {
		logger.Info("Transcript of meeting %s hit the chunk cap, tail content not indexed", meeting.ID)
	}
	logger.Info("Indexed meeting %q with %d chunks", meeting.Title, len(texts))

	return nil
}

// extractContent decomposes a meeting into (text, content type) pairs
// in a fixed order: transcript, summary, action items, decisions,
// timelines.
func (e *SearchEngine) extractContent(meeting domain.Meeting) ([]string, []domain.ContentType) {
	var texts []string
	var types []domain.ContentType

	for _, chunk := range e.chunker.Chunk(meeting.Transcript) {
		texts = append(texts, chunk)
		types = append(types, domain.ContentTypeTranscript)
	}

	if meeting.Summary != "" {
		texts = append(texts, meeting.Summary)
		types = append(types, domain.ContentTypeSummary)
	}

	for _, item := range meeting.ActionItems {
		if text := strings.TrimSpace(item.Text); text != "" {
			texts = append(texts, text)
			types = append(types, domain.ContentTypeActionItem)
		}
	}

	for _, decision := range meeting.KeyDecisions {
		if text := strings.TrimSpace(decision); text != "" {
			texts = append(texts, text)
			types = append(types, domain.ContentTypeDecision)
		}
	}

	for _, entry := range meeting.Timelines {
		text := entry.Timeline
		if entry.Context != "" {
			text = fmt.Sprintf("%s - %s", entry.Timeline, entry.Context)
		}
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
			types = append(types, domain.ContentTypeTimeline)
		}
	}

	return texts, types
}

// Search embeds the query, over-fetches twice the requested result
// count from the vector index to compensate for filtering attrition,
// applies the filters in similarity order and decorates survivors with
// snippets. An empty index or a missing embedder yields an empty
// slice, not an error.
func (e *SearchEngine) Search(
	ctx context.Context, query string, topK int, filters domain.SearchFilters,
) ([]domain.SearchResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if e.embedder == nil || e.index == nil || e.chunks == nil {
		logger.Warn("Search components not available, returning no results")
		return []domain.SearchResult{}, nil
	}
	if e.chunks.Len() == 0 {
		logger.Debug("Empty index, returning no results")
		return []domain.SearchResult{}, nil
	}

	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVector, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	normalize(queryVector)

	fetchK := min(topK*2, e.chunks.Len())
	logger.Debug("Fetching %d candidates for top %d", fetchK, topK)

	hits, err := e.index.Search(ctx, queryVector, fetchK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	results := make([]domain.SearchResult, 0, topK)
	for _, hit := range hits {
		record, ok := e.chunks.Get(hit.Position)
		if !ok {
			continue
		}
		if !e.passesFilters(record, hit.Similarity, filters) {
			continue
		}

		results = append(results, domain.SearchResult{
			MeetingID:      record.MeetingID,
			MeetingTitle:   record.MeetingTitle,
			MeetingDate:    record.MeetingDate,
			ContentType:    record.ContentType,
			Text:           record.Text,
			Participants:   record.Participants,
			RelevanceScore: hit.Similarity,
			Snippet:        makeSnippet(record.Text, query, e.snippetLength),
		})

		if len(results) >= topK {
			break
		}
	}

	logger.Info("Found %d results for %q", len(results), query)
	return results, nil
}

// passesFilters applies the post-retrieval filter chain to one candidate.
func (e *SearchEngine) passesFilters(record domain.ChunkRecord, score float64, filters domain.SearchFilters) bool {
	if len(filters.ContentTypes) > 0 && !containsType(filters.ContentTypes, record.ContentType) {
		return false
	}

	if filters.MinRelevance != nil && score < *filters.MinRelevance {
		return false
	}

	if !matchesDateRange(record.MeetingDate, filters.DateFrom, filters.DateTo) {
		return false
	}

	if len(filters.Participants) > 0 {
		if e.relevance.Score(record.Text, filters.Participants) < ParticipantFilterThreshold {
			return false
		}
	}

	return true
}

// MeetingChunks returns all chunks of one meeting in stored order.
func (e *SearchEngine) MeetingChunks(meetingID string) []domain.ChunkRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.chunks == nil {
		return nil
	}

	var out []domain.ChunkRecord
	for _, record := range e.chunks.All() {
		if record.MeetingID == meetingID {
			out = append(out, record)
		}
	}
	return out
}

// SimilarMeetings ranks other meetings by the average similarity of
// their chunks to a representative text of the reference meeting - its
// summary if indexed, otherwise the head of its transcript. The
// reference meeting itself is never returned.
func (e *SearchEngine) SimilarMeetings(ctx context.Context, meetingID string, topK int) ([]domain.SimilarMeeting, error) {
	if topK <= 0 {
		topK = DefaultSimilarTopK
	}

	queryText := e.representativeText(meetingID)
	if queryText == "" {
		logger.Warn("Meeting %s not found in index", meetingID)
		return []domain.SimilarMeeting{}, nil
	}

	results, err := e.Search(ctx, queryText, topK*3, domain.SearchFilters{})
	if err != nil {
		return nil, fmt.Errorf("similar meetings for %s: %w", meetingID, err)
	}

	type group struct {
		meeting domain.SimilarMeeting
		scores  []float64
		types   map[domain.ContentType]bool
	}
	groups := make(map[string]*group)
	var order []string

	for _, result := range results {
		if result.MeetingID == meetingID {
			continue
		}
		g, ok := groups[result.MeetingID]
		if !ok {
			g = &group{
				meeting: domain.SimilarMeeting{
					MeetingID:    result.MeetingID,
					MeetingTitle: result.MeetingTitle,
					MeetingDate:  result.MeetingDate,
					Participants: result.Participants,
				},
				types: make(map[domain.ContentType]bool),
			}
			groups[result.MeetingID] = g
			order = append(order, result.MeetingID)
		}
		g.scores = append(g.scores, result.RelevanceScore)
		g.types[result.ContentType] = true
	}

	similar := make([]domain.SimilarMeeting, 0, len(order))
	for _, id := range order {
		g := groups[id]

		sum := 0.0
		for _, s := range g.scores {
			sum += s
		}
		g.meeting.AverageSimilarity = sum / float64(len(g.scores))

		for _, t := range domain.AllContentTypes {
			if g.types[t] {
				g.meeting.MatchingContentTypes = append(g.meeting.MatchingContentTypes, t)
			}
		}

		similar = append(similar, g.meeting)
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].AverageSimilarity > similar[j].AverageSimilarity
	})

	if len(similar) > topK {
		similar = similar[:topK]
	}
	return similar, nil
}

// representativeText picks the query text for similar-meeting ranking.
func (e *SearchEngine) representativeText(meetingID string) string {
	chunks := e.MeetingChunks(meetingID)

	for _, chunk := range chunks {
		if chunk.ContentType == domain.ContentTypeSummary {
			return chunk.Text
		}
	}
	for _, chunk := range chunks {
		if chunk.ContentType == domain.ContentTypeTranscript {
			if len(chunk.Text) > similarQueryLimit {
				return chunk.Text[:similarQueryLimit]
			}
			return chunk.Text
		}
	}
	return ""
}

// Statistics summarises the index. An empty index reports zero counts.
func (e *SearchEngine) Statistics() domain.IndexStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stats := domain.IndexStats{
		ContentTypeCounts: make(map[domain.ContentType]int),
	}
	if e.embedder != nil {
		stats.ModelName = e.embedder.ModelName()
	}
	if e.index != nil {
		stats.EmbeddingDimension = e.index.Dimensions()
		stats.IndexSizeBytes = e.index.SizeOnDisk()
	}
	if e.chunks == nil {
		return stats
	}

	meetings := make(map[string]bool)
	transcriptChunks := make(map[string]int)
	for _, record := range e.chunks.All() {
		stats.TotalChunks++
		meetings[record.MeetingID] = true
		stats.ContentTypeCounts[record.ContentType]++
		if record.ContentType == domain.ContentTypeTranscript {
			transcriptChunks[record.MeetingID]++
		}
	}
	stats.TotalMeetings = len(meetings)

	for _, n := range transcriptChunks {
		if n == e.chunker.TargetChunks() {
			stats.CappedTranscripts++
		}
	}

	return stats
}

// AllParticipants returns the distinct participant names across all
// indexed chunks, sorted.
func (e *SearchEngine) AllParticipants() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.chunks == nil {
		return nil
	}

	seen := make(map[string]bool)
	for _, record := range e.chunks.All() {
		for _, p := range record.Participants {
			seen[p] = true
		}
	}

	participants := make([]string, 0, len(seen))
	for p := range seen {
		participants = append(participants, p)
	}
	sort.Strings(participants)
	return participants
}

// MeetingDateRange returns the earliest and latest meeting dates in
// the index, as stored (ISO-8601 strings sort chronologically).
func (e *SearchEngine) MeetingDateRange() domain.DateRange {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.chunks == nil {
		return domain.DateRange{}
	}

	var dates []string
	for _, record := range e.chunks.All() {
		if record.MeetingDate != "" {
			dates = append(dates, record.MeetingDate)
		}
	}
	if len(dates) == 0 {
		return domain.DateRange{}
	}

	sort.Strings(dates)
	return domain.DateRange{Earliest: dates[0], Latest: dates[len(dates)-1]}
}

// Close releases index resources.
func (e *SearchEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.index != nil {
		return e.index.Close()
	}
	return nil
}

// normalize scales v to unit length in place so that inner product
// equals cosine similarity.
func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}

func containsType(types []domain.ContentType, t domain.ContentType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
