// Command loader consumes loading_requested events and persists new job
// listings described in SPEC_FULL.md §4.3.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/broker"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/config"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/db"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/loadersvc"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/logging"
)

func main() {
	root := &cobra.Command{
		Use:   "loader",
		Short: "Loader worker: loading_requested -> persisted jobs",
		RunE:  run,
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New("loader", cfg.Environment)
	log.Info().Msg("starting loader worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := broker.WaitForBroker(ctx, cfg.KafkaBrokerURL, log); err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	repo := db.NewJobRepository(gdb)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	worker := loadersvc.NewWorker(cfg, repo, log)
	defer worker.Close()

	go worker.Run(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down loader worker")
	cancel()
	return nil
}
