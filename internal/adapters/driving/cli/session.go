package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage isolated search sessions",
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := sessionService.CreateSession()
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		cmd.Println(id)
		return nil
	},
}

var sessionInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show session manager state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := json.MarshalIndent(sessionService.Info(), "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	},
}

var sessionStatsCmd = &cobra.Command{
	Use:   "stats [session-id]",
	Short: "Show statistics for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, ok := sessionService.SessionStats(args[0])
		if !ok {
			return fmt.Errorf("session %s not found", args[0])
		}
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	},
}

var sessionMeetingsCmd = &cobra.Command{
	Use:   "meetings [session-id]",
	Short: "List the meetings added to a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meetings := sessionService.SessionMeetings(args[0])
		if len(meetings) == 0 {
			cmd.Println("No meetings in session.")
			return nil
		}
		for i, m := range meetings {
			cmd.Printf("[%d] %s  %s  (%s)\n", i+1, m.ID, m.Title, m.Date)
		}
		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session and all its data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessionService.DeleteSession(args[0]); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		cmd.Printf("Deleted session %s\n", args[0])
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every session and its search index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := sessionService.ClearAll(); err != nil {
			return fmt.Errorf("clear sessions: %w", err)
		}
		cmd.Println("Cleared all sessions.")
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionCreateCmd)
	sessionCmd.AddCommand(sessionInfoCmd)
	sessionCmd.AddCommand(sessionStatsCmd)
	sessionCmd.AddCommand(sessionMeetingsCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	sessionCmd.AddCommand(sessionClearCmd)
	rootCmd.AddCommand(sessionCmd)
}
