package jobs

import (
	"context"
	"fmt"

	"github.com/plotwise/plotwise/internal/external/listings"
	"github.com/plotwise/plotwise/internal/repository"
	"github.com/plotwise/plotwise/pkg/logger"
)

// City slugs refreshed on each run
var refreshCities = []string{
	"patna",
	"ranchi",
	"lucknow",
	"bengaluru",
	"gurgaon",
}

// ListingsRefreshJob scrapes current sale listings and upserts them into
// the comparable-transaction store.
type ListingsRefreshJob struct {
	scraper *listings.Scraper
	txns    *repository.TransactionRepository
	logger  *logger.Logger
}

// NewListingsRefreshJob creates a new listings refresh job
func NewListingsRefreshJob(
	scraper *listings.Scraper,
	txns *repository.TransactionRepository,
	log *logger.Logger,
) *ListingsRefreshJob {
	return &ListingsRefreshJob{
		scraper: scraper,
		txns:    txns,
		logger:  log,
	}
}

// Name returns the job name
func (j *ListingsRefreshJob) Name() string {
	return "listings_refresh"
}

// Schedule returns the cron schedule (every day at 2 AM)
func (j *ListingsRefreshJob) Schedule() string {
	return "0 0 2 * * *"
}

// Run scrapes each configured city. One failed city does not abort the
// rest; the job fails only when every city fails.
func (j *ListingsRefreshJob) Run(ctx context.Context) error {
	if !j.scraper.Enabled() {
		j.logger.Debug("Listings scraping disabled, skipping refresh")
		return nil
	}

	var succeeded int
	for _, city := range refreshCities {
		scraped, err := j.scraper.ScrapeCity(ctx, city)
		if err != nil {
			j.logger.WithFields(map[string]interface{}{
				"city":  city,
				"error": err.Error(),
			}).Warn("Failed to scrape city listings")
			continue
		}

		if err := j.txns.SaveListings(ctx, scraped); err != nil {
			j.logger.WithFields(map[string]interface{}{
				"city":  city,
				"error": err.Error(),
			}).Warn("Failed to store scraped listings")
			continue
		}

		succeeded++
	}

	if succeeded == 0 {
		return fmt.Errorf("listings refresh failed for all %d cities", len(refreshCities))
	}

	j.logger.WithFields(map[string]interface{}{
		"cities_ok":    succeeded,
		"cities_total": len(refreshCities),
	}).Info("Listings refresh completed")
	return nil
}
