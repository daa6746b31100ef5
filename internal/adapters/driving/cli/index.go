package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/meetsearch/internal/core/domain"
)

var indexSession string

var indexCmd = &cobra.Command{
	Use:   "index [meeting.json]",
	Short: "Index a meeting submission into a session",
	Long: `Reads a meeting submission (transcript plus derived insights) from a
JSON file, records it in the session and indexes its content for
semantic search. Both steps must succeed for the meeting to be
searchable and listable.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVarP(&indexSession, "session", "s", "", "session ID (required)")
	indexCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read meeting file: %w", err)
	}

	var meeting domain.Meeting
	if err := json.Unmarshal(data, &meeting); err != nil {
		return fmt.Errorf("parse meeting file: %w", err)
	}
	if meeting.ID == "" {
		return fmt.Errorf("meeting file has no id: %w", domain.ErrInvalidInput)
	}

	engine, err := sessionService.EngineFor(indexSession)
	if err != nil {
		return fmt.Errorf("session engine: %w", err)
	}

	if err := sessionService.AddMeeting(indexSession, meeting); err != nil {
		return fmt.Errorf("record meeting: %w", err)
	}

	if err := engine.AddMeeting(context.Background(), meeting); err != nil {
		if errors.Is(err, domain.ErrNoContent) {
			return fmt.Errorf("meeting %s has no indexable content", meeting.ID)
		}
		return fmt.Errorf("index meeting: %w", err)
	}

	stats := engine.Statistics()
	cmd.Printf("Indexed meeting %q (%d chunks total in session index)\n", meeting.Title, stats.TotalChunks)
	return nil
}
