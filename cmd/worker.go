package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the deferred completion worker",
	Long:  "Polls due order completion jobs and completes them through the worker pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scheduler, pool, err := a.startCompletion(ctx)
		if err != nil {
			return err
		}
		slog.Info("completion worker started", "workers", cfg.CompletionWorkers, "interval", cfg.CompletionPollInterval)

		<-ctx.Done()

		scheduler.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		pool.Shutdown(shutdownCtx)

		slog.Info("completion worker shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
