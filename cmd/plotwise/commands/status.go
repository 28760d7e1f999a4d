package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/plotwise/plotwise/internal/repository"
	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/database"
	"github.com/plotwise/plotwise/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status",
	Long: `Checks connectivity to the database and cache and prints data counts.

Displayed:
- Database reachability and pool stats
- Redis cache status
- Comparable transaction count
- Recent evaluations

Example:
  go run ./cmd/plotwise status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fmt.Println("=== Plotwise System Status ===")
	fmt.Println()

	fmt.Println("🗄️  Database")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	db, err := database.New(cfg)
	if err != nil {
		fmt.Printf("%-15s %s\n", "Status:", "unreachable")
		fmt.Printf("%-15s %v\n", "Error:", err)
		return nil
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		fmt.Printf("%-15s %s\n", "Status:", "ping failed")
		fmt.Printf("%-15s %v\n", "Error:", err)
		return nil
	}

	stats := db.Stats()
	fmt.Printf("%-15s %s\n", "Status:", "✅ connected")
	fmt.Printf("%-15s %d/%d\n", "Connections:", stats.AcquiredConns(), stats.MaxConns())
	fmt.Println()

	fmt.Println("⚡ Redis Cache")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	redisClient, err := redis.New(cfg)
	switch {
	case err != nil:
		fmt.Printf("%-15s %s (%v)\n", "Status:", "unreachable", err)
	case !redisClient.Enabled():
		fmt.Printf("%-15s %s\n", "Status:", "disabled")
	default:
		fmt.Printf("%-15s %s\n", "Status:", "✅ connected")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	fmt.Println()

	fmt.Println("📊 Data")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	txns := repository.NewTransactionRepository(db.Pool)
	if count, err := txns.Count(ctx); err == nil {
		fmt.Printf("%-15s %d\n", "Transactions:", count)
	} else {
		fmt.Printf("%-15s %v\n", "Transactions:", err)
	}

	evals := repository.NewEvaluationRepository(db.Pool)
	recent, err := evals.ListRecent(ctx, 5)
	if err != nil {
		fmt.Printf("%-15s %v\n", "Evaluations:", err)
		return nil
	}

	fmt.Println()
	fmt.Println("🏠 Recent Evaluations")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if len(recent) == 0 {
		fmt.Println("(none)")
		return nil
	}
	for _, ev := range recent {
		decision := ""
		if ev.Result != nil {
			decision = string(ev.Result.Decision)
		}
		fmt.Printf("%s  %-8s %s\n",
			ev.CreatedAt.Format("2006-01-02 15:04"), decision, ev.Address)
	}

	return nil
}
