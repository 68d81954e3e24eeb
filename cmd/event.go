package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/trackit/internal/session"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Publish console events",
}

var endSessionCmd = &cobra.Command{
	Use:   "end-session [session-id]",
	Short: "End a console session",
	Long:  `Delete a session and publish session.ended so its page state and toasts are dropped`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		endSession(args[0])
	},
}

func endSession(id string) {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	if err := deps.App.Sessions.End(context.Background(), id, session.ReasonRevoked); err != nil {
		deps.Logger.Error("failed to end session", "error", err, "session_id", id)
		os.Exit(1)
	}
	deps.Logger.Info("session ended", "session_id", id)
}

func init() {
	eventCmd.AddCommand(endSessionCmd)
	rootCmd.AddCommand(eventCmd)
}
