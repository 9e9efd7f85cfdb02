package credential

import (
	"context"
	"fmt"

	"github.com/edulane/trailguard/internal/application/ports"
	"github.com/edulane/trailguard/internal/domain"
	domerrors "github.com/edulane/trailguard/internal/domain/errors"
)

// ClearPassword removes a trail's password protection and revokes all
// outstanding unlocks. Idempotent: clearing an unprotected trail is a
// no-op.
type ClearPassword struct {
	trails  ports.TrailRepository
	unlocks ports.UnlockRepository
}

func NewClearPassword(trails ports.TrailRepository, unlocks ports.UnlockRepository) *ClearPassword {
	return &ClearPassword{trails: trails, unlocks: unlocks}
}

func (uc *ClearPassword) Execute(ctx context.Context, trailID domain.TrailID) error {
	trail, err := uc.trails.GetByID(ctx, trailID)
	if err != nil {
		return err
	}
	if trail == nil {
		return domerrors.ErrTrailNotFound
	}
	if err := uc.trails.UpdatePassword(ctx, trailID, nil, nil, false); err != nil {
		return fmt.Errorf("clear password: %w", err)
	}
	if err := uc.unlocks.RevokeAll(ctx, trailID); err != nil {
		return fmt.Errorf("revoke unlocks: %w", err)
	}
	return nil
}
