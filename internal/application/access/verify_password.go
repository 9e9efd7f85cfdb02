package access

import (
	"context"
	"fmt"
	"time"

	"github.com/edulane/trailguard/internal/domain"
	domerrors "github.com/edulane/trailguard/internal/domain/errors"
)

// VerifyStatus classifies a password submission outcome.
type VerifyStatus string

const (
	VerifySuccess     VerifyStatus = "success"
	VerifyFailure     VerifyStatus = "failure"
	VerifyRateLimited VerifyStatus = "rate_limited"
)

// VerifyResult is the outcome of a password submission. Failure
// carries the hint; RateLimited carries the time until the window
// resets. All three are data, not errors.
type VerifyResult struct {
	Status  VerifyStatus
	Hint    *string
	ResetIn time.Duration
}

// VerifyPassword runs the password-submission protocol: throttle
// check, hash verification, attempt audit, unlock grant.
//
// A rate-limited call returns before the hash is touched and writes
// no attempt row. Every verified attempt writes exactly one audit
// row, success or not; a failed audit write aborts loudly. A wrong
// password is a normal Failure outcome, never an error.
func (e *Engine) VerifyPassword(ctx context.Context, actor *domain.Actor, trail *domain.Trail, password, origin string) (VerifyResult, error) {
	if actor == nil {
		return VerifyResult{}, fmt.Errorf("verify password: authenticated actor required")
	}

	key := trail.ID.String() + "|" + origin
	rl, err := e.limiter.Check(ctx, key, e.opts.AttemptLimit, e.opts.AttemptWindow)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("rate limit check: %w", err)
	}
	if !rl.Allowed {
		return VerifyResult{Status: VerifyRateLimited, ResetIn: rl.ResetIn}, nil
	}

	if !trail.IsPasswordProtected {
		return VerifyResult{}, domerrors.ErrNotPasswordProtected
	}
	if trail.PasswordHash == nil {
		return VerifyResult{}, fmt.Errorf("trail %s: %w", trail.ID, domerrors.ErrCredentialIntegrity)
	}

	valid := e.hasher.Verify(password, *trail.PasswordHash)

	if err := e.attempts.Record(ctx, &domain.Attempt{
		TrailID:   trail.ID,
		ActorID:   actor.ID,
		Origin:    origin,
		Success:   valid,
		CreatedAt: e.now(),
	}); err != nil {
		return VerifyResult{}, fmt.Errorf("record attempt: %w", err)
	}

	if !valid {
		return VerifyResult{Status: VerifyFailure, Hint: trail.PasswordHint}, nil
	}
	if err := e.unlocks.Grant(ctx, actor.ID, trail.ID); err != nil {
		return VerifyResult{}, fmt.Errorf("grant unlock: %w", err)
	}
	return VerifyResult{Status: VerifySuccess}, nil
}
