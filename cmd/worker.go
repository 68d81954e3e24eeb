package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start background workers that keep the console's own state tidy.`,
}

// Session janitor command
var sessionWorkerCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Purge expired console sessions",
	Long:  `Periodically delete expired sessions together with their page state and toasts`,
	Run: func(cmd *cobra.Command, args []string) {
		startSessionWorker()
	},
}

var (
	purgeInterval time.Duration
	purgeOnce     bool
)

func startSessionWorker() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	log := deps.Logger
	sessions := deps.App.Sessions

	purge := func(ctx context.Context) {
		n, err := sessions.PurgeExpired(ctx)
		if err != nil {
			log.Error("session purge failed", "error", err)
			return
		}
		if n > 0 {
			log.Info("expired sessions purged", "count", n)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	purge(ctx)
	if purgeOnce {
		return
	}

	log.Info("session worker is running. Press Ctrl+C to stop.", "interval", purgeInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			purge(ctx)
		case sig := <-sigChan:
			log.Info("received signal, shutting down session worker", "signal", sig)
			return
		}
	}
}

func init() {
	sessionWorkerCmd.Flags().DurationVar(&purgeInterval, "interval", 5*time.Minute, "time between purges")
	sessionWorkerCmd.Flags().BoolVar(&purgeOnce, "once", false, "purge once and exit")

	workerCmd.AddCommand(sessionWorkerCmd)
	rootCmd.AddCommand(workerCmd)
}
