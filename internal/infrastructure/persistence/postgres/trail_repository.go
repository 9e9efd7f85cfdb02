package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edulane/trailguard/internal/domain"
)

// TrailRepository reads the access-gating fields of trails and owns
// the password columns.
type TrailRepository struct {
	pool *pgxpool.Pool
}

func NewTrailRepository(pool *pgxpool.Pool) *TrailRepository {
	return &TrailRepository{pool: pool}
}

func (r *TrailRepository) GetByID(ctx context.Context, trailID domain.TrailID) (*domain.Trail, error) {
	query := `
		SELECT id, title, is_restricted, is_password_protected,
		       password_hash, password_hint, creator_id, visibility,
		       created_at, updated_at
		FROM trails
		WHERE id = $1
	`

	var t domain.Trail
	var creatorID *string
	err := r.pool.QueryRow(ctx, query, trailID.UUID).Scan(
		&t.ID.UUID,
		&t.Title,
		&t.IsRestricted,
		&t.IsPasswordProtected,
		&t.PasswordHash,
		&t.PasswordHint,
		&creatorID,
		&t.Visibility,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trail by id: %w", err)
	}
	if creatorID != nil {
		id, err := domain.ParseActorID(*creatorID)
		if err != nil {
			return nil, fmt.Errorf("get trail by id: corrupt creator_id: %w", err)
		}
		t.CreatorID = &id
	}
	return &t, nil
}

func (r *TrailRepository) UpdatePassword(ctx context.Context, trailID domain.TrailID, hash, hint *string, protected bool) error {
	query := `
		UPDATE trails
		SET password_hash = $1, password_hint = $2,
		    is_password_protected = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := r.pool.Exec(ctx, query, hash, hint, protected, trailID.UUID)
	if err != nil {
		return fmt.Errorf("update trail password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update trail password: trail %s not found", trailID)
	}
	return nil
}
