package services

import "strings"

// Relevance thresholds. These are deliberate heuristics, not
// NER-grade attribution: chunks are scored by string evidence that a
// person speaks in or is discussed by the text.
const (
	// SpeakerRelevance is assigned when the person speaks in the
	// chunk ("Name: ..." at a line start).
	SpeakerRelevance = 1.0

	// ContextRelevance is assigned for strong contextual mentions
	// ("name said", "name mentioned", "name will", "name:").
	ContextRelevance = 0.9

	// MentionRelevance is assigned when the name merely appears.
	MentionRelevance = 0.6

	// ParticipantFilterThreshold is the minimum relevance a chunk
	// needs to pass a participant filter in search.
	ParticipantFilterThreshold = 0.3
)

// RelevanceScorer scores how relevant a text chunk is to named
// participants. It is kept separate from the retrieval path so the
// heuristic can be tested and swapped independently.
type RelevanceScorer struct{}

// NewRelevanceScorer creates a relevance scorer.
func NewRelevanceScorer() *RelevanceScorer {
	return &RelevanceScorer{}
}

// Score returns the relevance of text to a set of participants: the
// maximum single-participant relevance, in [0, 1].
func (r *RelevanceScorer) Score(text string, participants []string) float64 {
	if text == "" || len(participants) == 0 {
		return 0
	}

	max := 0.0
	for _, p := range participants {
		if s := r.ScoreOne(text, p); s > max {
			max = s
		}
	}
	return max
}

// ScoreOne returns the relevance of text to a single participant: the
// maximum of the speaker-pattern score and the context score.
func (r *RelevanceScorer) ScoreOne(text, person string) float64 {
	person = strings.TrimSpace(person)
	if text == "" || person == "" {
		return 0
	}

	score := r.speakerScore(text, person)
	if context := r.contextScore(text, person); context > score {
		score = context
	}
	return score
}

// speakerScore returns SpeakerRelevance when the person (full name or
// first name, case-insensitive) opens a line as the speaker.
func (r *RelevanceScorer) speakerScore(text, person string) float64 {
	names := []string{strings.ToLower(person)}
	if first := firstName(person); first != person {
		names = append(names, strings.ToLower(first))
	}

	for _, line := range strings.Split(strings.ToLower(text), "\n") {
		for _, name := range names {
			rest, ok := strings.CutPrefix(line, name+":")
			if ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
				return SpeakerRelevance
			}
		}
	}
	return 0
}

// contextScore scores contextual mentions of the person, matched on
// lowercased text.
func (r *RelevanceScorer) contextScore(text, person string) float64 {
	textLower := strings.ToLower(text)
	personLower := strings.ToLower(person)

	for _, pattern := range []string{":", " said", " mentioned", " will"} {
		if strings.Contains(textLower, personLower+pattern) {
			return ContextRelevance
		}
	}

	if strings.Contains(textLower, personLower) ||
		strings.Contains(textLower, strings.ToLower(firstName(person))) {
		return MentionRelevance
	}

	return 0
}

func firstName(person string) string {
	fields := strings.Fields(person)
	if len(fields) == 0 {
		return person
	}
	return fields[0]
}
