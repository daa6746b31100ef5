package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreOne_Speaker(t *testing.T) {
	scorer := NewRelevanceScorer()

	text := "Bob: We should revisit the roadmap.\nAlice Smith: Agreed."

	assert.Equal(t, SpeakerRelevance, scorer.ScoreOne(text, "Alice Smith"))
	assert.Equal(t, SpeakerRelevance, scorer.ScoreOne(text, "Bob"))
	// First name alone matches too.
	assert.Equal(t, SpeakerRelevance, scorer.ScoreOne("alice: hello", "Alice Smith"))
}

func TestScoreOne_SpeakerPrefixNotMidWord(t *testing.T) {
	scorer := NewRelevanceScorer()

	// "Bobby:" must not count as "Bob" speaking; the mention still
	// scores because "bob" appears as a substring.
	assert.Equal(t, MentionRelevance, scorer.ScoreOne("Bobby: status update", "Bob"))
}

func TestScoreOne_Context(t *testing.T) {
	scorer := NewRelevanceScorer()

	assert.Equal(t, ContextRelevance, scorer.ScoreOne("Yesterday Alice said the deploy is blocked", "Alice"))
	assert.Equal(t, ContextRelevance, scorer.ScoreOne("Alice mentioned the budget", "Alice"))
	assert.Equal(t, ContextRelevance, scorer.ScoreOne("Alice will follow up", "Alice"))
}

func TestScoreOne_Mention(t *testing.T) {
	scorer := NewRelevanceScorer()

	assert.Equal(t, MentionRelevance, scorer.ScoreOne("The task was assigned to Alice yesterday", "Alice Smith"))
	assert.Equal(t, 0.0, scorer.ScoreOne("Nobody relevant appears here", "Alice"))
}

func TestScoreOne_Empty(t *testing.T) {
	scorer := NewRelevanceScorer()

	assert.Equal(t, 0.0, scorer.ScoreOne("", "Alice"))
	assert.Equal(t, 0.0, scorer.ScoreOne("some text", ""))
	assert.Equal(t, 0.0, scorer.ScoreOne("some text", "   "))
}

func TestScore_MaxOverParticipants(t *testing.T) {
	scorer := NewRelevanceScorer()

	text := "Alice: I'll take it. Bob was out today."

	score := scorer.Score(text, []string{"Bob", "Alice"})
	assert.Equal(t, SpeakerRelevance, score)

	assert.Equal(t, 0.0, scorer.Score(text, nil))
	assert.Equal(t, 0.0, scorer.Score("", []string{"Alice"}))
}
