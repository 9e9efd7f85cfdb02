package access

import (
	"context"

	"github.com/edulane/trailguard/internal/domain"
)

// Probe tells a front-end whether to prompt for a password before
// attempting an action, so it can short-circuit without a second
// round-trip.
type Probe struct {
	NeedsPassword bool
	IsCreator     bool
	IsExpired     bool
}

// NeedsPassword is the read-only probe behind Probe. It reuses the
// same creator and unlock logic as the decision functions.
func (e *Engine) NeedsPassword(ctx context.Context, actor *domain.Actor, trail *domain.Trail) (Probe, error) {
	if !trail.IsPasswordProtected {
		return Probe{}, nil
	}
	if actor == nil {
		return Probe{NeedsPassword: true}, nil
	}
	if trail.CreatedBy(actor.ID) {
		return Probe{IsCreator: true}, nil
	}
	state, err := e.unlockState(ctx, actor.ID, trail.ID)
	if err != nil {
		return Probe{NeedsPassword: true}, err
	}
	switch state {
	case domain.UnlockValid:
		return Probe{}, nil
	case domain.UnlockExpired:
		return Probe{NeedsPassword: true, IsExpired: true}, nil
	default:
		return Probe{NeedsPassword: true}, nil
	}
}
