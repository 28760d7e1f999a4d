package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/plotwise/plotwise/internal/api"
	"github.com/plotwise/plotwise/internal/api/handlers"
	"github.com/plotwise/plotwise/internal/events"
	"github.com/plotwise/plotwise/internal/repository"
	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/database"
	"github.com/plotwise/plotwise/pkg/logger"
	"github.com/plotwise/plotwise/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the evaluation API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                - Health check
  POST /api/decision          - Run a property evaluation
  GET  /api/evaluations       - List recent evaluations
  GET  /api/evaluations/{id}  - Retrieve a stored evaluation
  GET  /api/events            - WebSocket pipeline event stream

Example:
  go run ./cmd/plotwise api
  go run ./cmd/plotwise api --port 8086`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	cache := redis.NewCache(redisClient, "plotwise")

	hub := events.NewHub(log)
	defer hub.Close()
	sink := events.NewMultiSink(events.NewLogSink(log), hub)

	orchestrator := buildOrchestrator(cfg, log, db, cache, sink)
	evalHandler := handlers.NewEvaluationHandler(
		orchestrator, repository.NewEvaluationRepository(db.Pool), log)

	router := api.NewRouter(evalHandler, hub, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/decision")
	fmt.Println("  GET  /api/evaluations")
	fmt.Println("  GET  /api/evaluations/{id}")
	fmt.Println("  GET  /api/events (WebSocket)")
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
