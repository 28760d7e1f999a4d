package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plotwise/plotwise/internal/contracts"
)

// ErrNotFound is returned when an evaluation id does not exist
var ErrNotFound = errors.New("evaluation not found")

// StoredEvaluation is one persisted evaluation with its identity
type StoredEvaluation struct {
	ID        string                      `json:"id"`
	Address   string                      `json:"address"`
	Result    *contracts.EvaluationResult `json:"result"`
	CreatedAt time.Time                   `json:"created_at"`
}

// EvaluationRepository persists completed evaluations
type EvaluationRepository struct {
	pool *pgxpool.Pool
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(pool *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{pool: pool}
}

// Save stores a completed evaluation and returns its id
func (r *EvaluationRepository) Save(
	ctx context.Context,
	address string,
	result *contracts.EvaluationResult,
) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal evaluation result: %w", err)
	}

	query := `
		INSERT INTO evaluations (address, decision, confidence, numeric_score, result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id string
	err = r.pool.QueryRow(ctx, query,
		address, string(result.Decision), result.Confidence, result.NumericScore, payload,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to save evaluation: %w", err)
	}
	return id, nil
}

// GetByID retrieves one evaluation
func (r *EvaluationRepository) GetByID(ctx context.Context, id string) (*StoredEvaluation, error) {
	query := `
		SELECT id, address, result, created_at
		FROM evaluations
		WHERE id = $1
	`

	var stored StoredEvaluation
	var payload []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&stored.ID, &stored.Address, &payload, &stored.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(payload, &stored.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation result: %w", err)
	}
	return &stored, nil
}

// ListRecent retrieves the most recent evaluations
func (r *EvaluationRepository) ListRecent(ctx context.Context, limit int) ([]*StoredEvaluation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT id, address, result, created_at
		FROM evaluations
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*StoredEvaluation
	for rows.Next() {
		var stored StoredEvaluation
		var payload []byte
		if err := rows.Scan(&stored.ID, &stored.Address, &payload, &stored.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &stored.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal evaluation result: %w", err)
		}
		out = append(out, &stored)
	}
	return out, rows.Err()
}
