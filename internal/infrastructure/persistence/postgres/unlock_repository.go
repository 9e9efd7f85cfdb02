package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edulane/trailguard/internal/domain"
)

// UnlockRepository stores trail unlocks keyed by (actor_id, trail_id).
// The primary key makes the upsert atomic per pair, which is all the
// serialization concurrent grants need.
type UnlockRepository struct {
	pool *pgxpool.Pool
}

func NewUnlockRepository(pool *pgxpool.Pool) *UnlockRepository {
	return &UnlockRepository{pool: pool}
}

func (r *UnlockRepository) Grant(ctx context.Context, actorID domain.ActorID, trailID domain.TrailID) error {
	query := `
		INSERT INTO trail_unlocks (actor_id, trail_id, unlocked_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (actor_id, trail_id)
		DO UPDATE SET unlocked_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, actorID.UUID, trailID.UUID); err != nil {
		return fmt.Errorf("grant unlock: %w", err)
	}
	return nil
}

func (r *UnlockRepository) Get(ctx context.Context, actorID domain.ActorID, trailID domain.TrailID) (*domain.Unlock, error) {
	query := `
		SELECT actor_id, trail_id, unlocked_at
		FROM trail_unlocks
		WHERE actor_id = $1 AND trail_id = $2
	`

	var u domain.Unlock
	err := r.pool.QueryRow(ctx, query, actorID.UUID, trailID.UUID).Scan(
		&u.ActorID.UUID,
		&u.TrailID.UUID,
		&u.UnlockedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unlock: %w", err)
	}
	return &u, nil
}

// RevokeAll deletes every unlock for the trail. Idempotent; racing
// grants are last-write-wins, the worst case being one actor
// re-entering a just-changed password.
func (r *UnlockRepository) RevokeAll(ctx context.Context, trailID domain.TrailID) error {
	query := `DELETE FROM trail_unlocks WHERE trail_id = $1`

	if _, err := r.pool.Exec(ctx, query, trailID.UUID); err != nil {
		return fmt.Errorf("revoke unlocks: %w", err)
	}
	return nil
}
