package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	similarSession string
	similarLimit   int
	similarJSON    bool
)

var similarCmd = &cobra.Command{
	Use:   "similar [meeting-id]",
	Short: "Find meetings similar to a given meeting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().StringVarP(&similarSession, "session", "s", "", "session ID (required)")
	similarCmd.MarkFlagRequired("session")
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "n", 5, "maximum number of meetings")
	similarCmd.Flags().BoolVar(&similarJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	engine, err := sessionService.EngineFor(similarSession)
	if err != nil {
		return fmt.Errorf("session engine: %w", err)
	}

	similar, err := engine.SimilarMeetings(context.Background(), args[0], similarLimit)
	if err != nil {
		return fmt.Errorf("similar meetings: %w", err)
	}

	if similarJSON {
		data, err := json.MarshalIndent(similar, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	if len(similar) == 0 {
		cmd.Println("No similar meetings found.")
		return nil
	}
	for i, m := range similar {
		cmd.Printf("[%d] %s (%s) %.3f %v\n", i+1, m.MeetingTitle, m.MeetingDate, m.AverageSimilarity, m.MatchingContentTypes)
	}
	return nil
}
