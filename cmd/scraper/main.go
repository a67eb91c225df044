// Command scraper consumes job_requested events and runs the scraping
// pipeline described in SPEC_FULL.md §4.2.
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
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/logging"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/scrapersvc"
)

func main() {
	root := &cobra.Command{
		Use:   "scraper",
		Short: "Scraping worker: job_requested -> loading_requested",
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

	log := logging.New("scraper", cfg.Environment)
	log.Info().Msg("starting scraper worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := broker.WaitForBroker(ctx, cfg.KafkaBrokerURL, log); err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}

	worker := scrapersvc.NewWorker(cfg, log)
	defer worker.Close()

	go worker.Run(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down scraper worker")
	cancel()
	return nil
}
