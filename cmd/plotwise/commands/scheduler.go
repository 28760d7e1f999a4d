package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/plotwise/plotwise/internal/external/listings"
	"github.com/plotwise/plotwise/internal/repository"
	"github.com/plotwise/plotwise/internal/scheduler"
	"github.com/plotwise/plotwise/internal/scheduler/jobs"
	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/database"
	"github.com/plotwise/plotwise/pkg/httputil"
	"github.com/plotwise/plotwise/pkg/logger"
	"github.com/plotwise/plotwise/pkg/redis"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the background maintenance jobs",
	Long: `Starts the job scheduler.

Jobs:
  listings_refresh      - scrape sale listings into the transaction store (daily, 2 AM)
  signal_cache_cleanup  - flush cached AQI and road signals (daily, 3 AM)

Example:
  go run ./cmd/plotwise scheduler
  go run ./cmd/plotwise scheduler --run-now listings_refresh`,
	RunE: runScheduler,
}

var runNowJob string

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().StringVar(&runNowJob, "run-now", "", "run the named job immediately on startup")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	cache := redis.NewCache(redisClient, "plotwise")

	httpClient := httputil.New(cfg, log)
	scraper := listings.NewScraper(cfg, httpClient, log)
	txnRepo := repository.NewTransactionRepository(db.Pool)

	sched := scheduler.New(log)

	if err := sched.AddJob(jobs.NewListingsRefreshJob(scraper, txnRepo, log)); err != nil {
		return fmt.Errorf("add listings job: %w", err)
	}
	if err := sched.AddJob(jobs.NewCacheCleanupJob(cache, log)); err != nil {
		return fmt.Errorf("add cache cleanup job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if runNowJob != "" {
		if err := sched.RunJob(runNowJob); err != nil {
			return fmt.Errorf("run job now: %w", err)
		}
	}

	fmt.Println("✅ Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	return nil
}
