package repository

import (
	"context"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/internal/signals"
)

// Ensure TransactionRepository satisfies the pricing contract
var _ signals.TransactionRepository = (*TransactionRepository)(nil)

// Meters per degree of latitude, used for the bounding-box prefilter
const metersPerDegreeLat = 111_320.0

// TransactionRepository stores comparable property transactions
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// GetComparables retrieves recent transactions of the same property type
// within radiusM of the location. A degree bounding box approximates the
// radius; at city scale the error is negligible for pricing bands.
func (r *TransactionRepository) GetComparables(
	ctx context.Context,
	loc *contracts.Location,
	propertyType string,
	radiusM int,
) ([]signals.Transaction, error) {
	latDelta := float64(radiusM) / metersPerDegreeLat
	lngDelta := float64(radiusM) / (metersPerDegreeLat * math.Cos(loc.Lat*math.Pi/180))

	query := `
		SELECT price, property_type
		FROM property_transactions
		WHERE property_type = $1
		  AND lat BETWEEN $2 AND $3
		  AND lng BETWEEN $4 AND $5
		  AND listed_at > NOW() - INTERVAL '18 months'
		ORDER BY listed_at DESC
		LIMIT 50
	`

	rows, err := r.pool.Query(ctx, query,
		propertyType,
		loc.Lat-latDelta, loc.Lat+latDelta,
		loc.Lng-lngDelta, loc.Lng+lngDelta,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []signals.Transaction
	for rows.Next() {
		var t signals.Transaction
		if err := rows.Scan(&t.Price, &t.PropertyType); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// SaveListings upserts scraped listings into the transaction store
func (r *TransactionRepository) SaveListings(ctx context.Context, listings []*contracts.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	query := `
		INSERT INTO property_transactions (source, source_ref, title, property_type, price, lat, lng, listed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (source, source_ref) DO UPDATE SET
			title = EXCLUDED.title,
			property_type = EXCLUDED.property_type,
			price = EXCLUDED.price,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			listed_at = EXCLUDED.listed_at
	`

	for _, l := range listings {
		if _, err := r.pool.Exec(ctx, query,
			l.Source, l.SourceRef, l.Title, l.PropertyType, l.Price, l.Lat, l.Lng, l.ListedAt,
		); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of stored transactions
func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM property_transactions`).Scan(&count)
	return count, err
}
