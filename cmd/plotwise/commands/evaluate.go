package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/internal/events"
	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/database"
	"github.com/plotwise/plotwise/pkg/logger"
	"github.com/plotwise/plotwise/pkg/redis"
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one property from the command line",
	Long: `Runs a single property evaluation and prints the result as JSON.

Example:
  go run ./cmd/plotwise evaluate --address "Kankarbagh, Patna" --price 4500000
  go run ./cmd/plotwise evaluate --lat 25.59 --lng 85.16 --price 2500000 \
      --type land --area 1306.8 --road-width 25 --end-use investment`,
	RunE: runEvaluate,
}

var (
	evalAddress   string
	evalLat       float64
	evalLng       float64
	evalPrice     int64
	evalType      string
	evalRadius    int
	evalArea      float64
	evalRoadWidth float64
	evalEndUse    string
)

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evalAddress, "address", "", "property address")
	evaluateCmd.Flags().Float64Var(&evalLat, "lat", 0, "latitude (overrides address)")
	evaluateCmd.Flags().Float64Var(&evalLng, "lng", 0, "longitude (overrides address)")
	evaluateCmd.Flags().Int64Var(&evalPrice, "price", 0, "asking price in INR (required)")
	evaluateCmd.Flags().StringVar(&evalType, "type", "", "property type (2bhk, house, land, plot, ...)")
	evaluateCmd.Flags().IntVar(&evalRadius, "radius", 0, "comparable search radius in meters")
	evaluateCmd.Flags().Float64Var(&evalArea, "area", 0, "land area in sqft (land only)")
	evaluateCmd.Flags().Float64Var(&evalRoadWidth, "road-width", 0, "access road width in feet")
	evaluateCmd.Flags().StringVar(&evalEndUse, "end-use", "", "end use (self_use, investment, both)")

	evaluateCmd.MarkFlagRequired("price")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
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

	orchestrator := buildOrchestrator(cfg, log, db, cache, events.NewLogSink(log))

	req := &contracts.EvaluationRequest{
		Address:      evalAddress,
		AskingPrice:  evalPrice,
		PropertyType: evalType,
		RadiusM:      evalRadius,
		EndUse:       evalEndUse,
	}
	if evalLat != 0 || evalLng != 0 {
		req.Lat = &evalLat
		req.Lng = &evalLng
	}
	if evalArea > 0 {
		req.LandAreaSqft = &evalArea
	}
	if evalRoadWidth > 0 {
		req.RoadWidthFt = &evalRoadWidth
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := orchestrator.Evaluate(ctx, req)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
