package cli

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/meetsearch/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_SessionFlagRequired(t *testing.T) {
	flag := searchCmd.Flags().Lookup("session")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Annotations, cobra.BashCompOneRequiredFlag)
}

func TestBuildFilters_ContentTypes(t *testing.T) {
	resetSearchFlags(t)
	searchTypes = []string{"summary", "action_item"}

	filters, err := buildFilters()
	require.NoError(t, err)
	assert.Equal(t, []domain.ContentType{
		domain.ContentTypeSummary,
		domain.ContentTypeActionItem,
	}, filters.ContentTypes)
}

func TestBuildFilters_UnknownContentType(t *testing.T) {
	resetSearchFlags(t)
	searchTypes = []string{"minutes"}

	_, err := buildFilters()
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestBuildFilters_MinScore(t *testing.T) {
	resetSearchFlags(t)

	// Negative sentinel means no threshold.
	searchMinScore = -1
	filters, err := buildFilters()
	require.NoError(t, err)
	assert.Nil(t, filters.MinRelevance)

	searchMinScore = 0.5
	filters, err = buildFilters()
	require.NoError(t, err)
	require.NotNil(t, filters.MinRelevance)
	assert.Equal(t, 0.5, *filters.MinRelevance)
}

func TestBuildFilters_PassThrough(t *testing.T) {
	resetSearchFlags(t)
	searchDateFrom = "2026-01-01"
	searchDateTo = "2026-01-31"
	searchParticipants = []string{"Alice Smith"}

	filters, err := buildFilters()
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", filters.DateFrom)
	assert.Equal(t, "2026-01-31", filters.DateTo)
	assert.Equal(t, []string{"Alice Smith"}, filters.Participants)
}

// resetSearchFlags clears the package-level search flag state and
// restores it when the test ends.
func resetSearchFlags(t *testing.T) {
	t.Helper()

	origTypes := searchTypes
	origFrom := searchDateFrom
	origTo := searchDateTo
	origParticipants := searchParticipants
	origMinScore := searchMinScore

	searchTypes = nil
	searchDateFrom = ""
	searchDateTo = ""
	searchParticipants = nil
	searchMinScore = -1

	t.Cleanup(func() {
		searchTypes = origTypes
		searchDateFrom = origFrom
		searchDateTo = origTo
		searchParticipants = origParticipants
		searchMinScore = origMinScore
	})
}
