// Command gateway runs the HTTP trigger/read API, the broker consumer that
// feeds the in-memory job status map, and the push-channel hub.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/apierr"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/config"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/db"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/gatewaysvc"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/logging"
)

func main() {
	root := &cobra.Command{
		Use:   "gateway",
		Short: "HTTP trigger API, job status map and push-channel hub",
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

	log := logging.New("gateway", cfg.Environment)
	log.Info().Str("http_addr", cfg.HTTPAddr).Msg("starting gateway")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := gatewaysvc.NewRuntime(ctx, cfg.KafkaBrokerURL, log)
	if err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}
	rt.Start(ctx)
	defer rt.Shutdown()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	repo := db.NewJobRepository(gdb)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
	})
	rateLimiter := gatewaysvc.NewRateLimiter(redisClient, cfg.RateLimitEnabled, cfg.RateLimitMaxRequests, cfg.RateLimitWindowSeconds, log)

	handlers := gatewaysvc.NewHandlers(rt.StatusMap, rt.Hub, repo, rt.JobsWriter(), rateLimiter, rt.Metrics, cfg.GoogleAPIKey, cfg.KafkaBrokerURL, log)

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), apierr.RecoveryMiddleware(log), rt.Metrics.Middleware())
	router.GET("/metrics", rt.Metrics.Handler())
	handlers.RegisterRoutes(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down gateway")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
