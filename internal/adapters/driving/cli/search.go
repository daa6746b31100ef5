package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/meetsearch/internal/core/domain"
)

var (
	searchSession      string
	searchLimit        int
	searchJSON         bool
	searchTypes        []string
	searchDateFrom     string
	searchDateTo       string
	searchParticipants []string
	searchMinScore     float64
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed meeting content in a session",
	Long: `Performs semantic search over a session's indexed meeting content.
Results can be narrowed by content type, date range, participant
relevance and minimum similarity score.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchSession, "session", "s", "", "session ID (required)")
	searchCmd.MarkFlagRequired("session")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringSliceVar(&searchTypes, "types", nil, "content types (transcript,summary,action_item,decision,timeline)")
	searchCmd.Flags().StringVar(&searchDateFrom, "from", "", "earliest meeting date (ISO-8601)")
	searchCmd.Flags().StringVar(&searchDateTo, "to", "", "latest meeting date (ISO-8601)")
	searchCmd.Flags().StringSliceVar(&searchParticipants, "participants", nil, "participant names")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-score", -1, "minimum relevance score")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	filters, err := buildFilters()
	if err != nil {
		return err
	}

	engine, err := sessionService.EngineFor(searchSession)
	if err != nil {
		return fmt.Errorf("session engine: %w", err)
	}

	results, err := engine.Search(context.Background(), query, searchLimit, filters)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func buildFilters() (domain.SearchFilters, error) {
	filters := domain.SearchFilters{
		DateFrom:     searchDateFrom,
		DateTo:       searchDateTo,
		Participants: searchParticipants,
	}

	for _, t := range searchTypes {
		ct := domain.ContentType(t)
		if !ct.Valid() {
			return filters, fmt.Errorf("unknown content type %q: %w", t, domain.ErrInvalidInput)
		}
		filters.ContentTypes = append(filters.ContentTypes, ct)
	}

	if searchMinScore >= 0 {
		min := searchMinScore
		filters.MinRelevance = &min
	}

	return filters, nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("[%d] %s (%s, %s) %.3f\n", i+1, r.MeetingTitle, r.ContentType, r.MeetingDate, r.RelevanceScore)
		cmd.Printf("    %s\n", r.Snippet)
	}
	return nil
}
