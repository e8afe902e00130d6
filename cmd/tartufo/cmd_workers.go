package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	// Import jobs so their init() funcs register the job types.
	_ "github.com/casatartufo/tartufo/app/jobs"
	"github.com/casatartufo/tartufo/pkg/cache"
	"github.com/casatartufo/tartufo/pkg/database"
	"github.com/casatartufo/tartufo/pkg/queue"
)

var queueWorkersFlag int

// tartufo queue:work — run a standalone worker process.
// Useful when confirmation emails should be processed outside the web server;
// requires the Redis driver so the web process and the worker share a queue.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		if err := cache.Connect(); err != nil {
			return fmt.Errorf("queue:work needs redis: %w", err)
		}
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		queue.UseDB(database.DB)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("🚀 Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\n⚡ Queue worker stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
	rootCmd.AddCommand(queueWorkCmd)
}
