package credential

import (
	"context"
	"fmt"

	"github.com/edulane/trailguard/internal/application/ports"
	"github.com/edulane/trailguard/internal/domain"
	domerrors "github.com/edulane/trailguard/internal/domain/errors"
)

// SetPassword sets or rotates a trail's password. Outstanding unlocks
// are revoked synchronously in the same call: a rotation must never
// leave stale unlocks alive.
type SetPassword struct {
	trails  ports.TrailRepository
	unlocks ports.UnlockRepository
	hasher  ports.PasswordHasher
}

func NewSetPassword(trails ports.TrailRepository, unlocks ports.UnlockRepository, hasher ports.PasswordHasher) *SetPassword {
	return &SetPassword{trails: trails, unlocks: unlocks, hasher: hasher}
}

func (uc *SetPassword) Execute(ctx context.Context, trailID domain.TrailID, password string, hint *string) error {
	trail, err := uc.trails.GetByID(ctx, trailID)
	if err != nil {
		return err
	}
	if trail == nil {
		return domerrors.ErrTrailNotFound
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := uc.trails.UpdatePassword(ctx, trailID, &hash, hint, true); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := uc.unlocks.RevokeAll(ctx, trailID); err != nil {
		return fmt.Errorf("revoke unlocks: %w", err)
	}
	return nil
}
