package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edulane/trailguard/internal/domain"
)

// AttemptRepository is the append-only audit log of verification
// attempts. Rows are never updated or deleted here; retention is an
// operational concern.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

func (r *AttemptRepository) Record(ctx context.Context, attempt *domain.Attempt) error {
	query := `
		INSERT INTO trail_password_attempts (trail_id, actor_id, origin, success, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(
		ctx, query,
		attempt.TrailID.UUID,
		attempt.ActorID.UUID,
		attempt.Origin,
		attempt.Success,
		attempt.CreatedAt,
	).Scan(&attempt.ID)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

func (r *AttemptRepository) ListByTrail(ctx context.Context, trailID domain.TrailID, from, to time.Time, limit int) ([]*domain.Attempt, error) {
	query := `
		SELECT id, trail_id, actor_id, origin, success, created_at
		FROM trail_password_attempts
		WHERE trail_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC
		LIMIT $4
	`

	if limit <= 0 {
		limit = 100
	}
	var fromArg, toArg *time.Time
	if !from.IsZero() {
		fromArg = &from
	}
	if !to.IsZero() {
		toArg = &to
	}

	rows, err := r.pool.Query(ctx, query, trailID.UUID, fromArg, toArg, limit)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*domain.Attempt
	for rows.Next() {
		var a domain.Attempt
		if err := rows.Scan(&a.ID, &a.TrailID.UUID, &a.ActorID.UUID, &a.Origin, &a.Success, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}
