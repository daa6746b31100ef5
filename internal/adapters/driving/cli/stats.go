package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsSession string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show search index statistics for a session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, err := sessionService.EngineFor(statsSession)
		if err != nil {
			return fmt.Errorf("session engine: %w", err)
		}

		stats := engine.Statistics()
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))

		if participants := engine.AllParticipants(); len(participants) > 0 {
			cmd.Printf("Participants: %v\n", participants)
		}
		if dates := engine.MeetingDateRange(); dates.Earliest != "" {
			cmd.Printf("Date range: %s .. %s\n", dates.Earliest, dates.Latest)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsSession, "session", "s", "", "session ID (required)")
	statsCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(statsCmd)
}
