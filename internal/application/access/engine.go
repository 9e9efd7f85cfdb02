package access

import (
	"context"
	"time"

	"github.com/edulane/trailguard/internal/application/ports"
	"github.com/edulane/trailguard/internal/domain"
)

// UnlockTTL is how long a successful password verification lasts. It
// is a single system-wide constant, not configurable per trail.
const UnlockTTL = 4 * time.Hour

// Default throttle for password verification, keyed by trail + origin.
const (
	DefaultAttemptLimit  = 5
	DefaultAttemptWindow = 15 * time.Minute
)

// Options tune the policy engine.
type Options struct {
	// PasswordIsAdditionalLayer selects the strict policy variant:
	// password protection layers over every other grant, so enrollment
	// and explicit grants never bypass it. When false (legacy
	// variant), a correct password is one alternative grant among
	// enrollment and the explicit allow-lists.
	PasswordIsAdditionalLayer bool
	// AttemptLimit/AttemptWindow throttle VerifyPassword per
	// (trail, origin) key. Zero values take the defaults.
	AttemptLimit  int
	AttemptWindow time.Duration
}

// Engine answers "may actor A perform action K on trail R" and runs
// the password-verification protocol. Admin-class and end-user-class
// actors are decided by separate functions with different precedence
// rules; see DecideAdmin and DecideEndUser.
type Engine struct {
	grants   ports.GrantRepository
	unlocks  ports.UnlockRepository
	attempts ports.AttemptLog
	hasher   ports.PasswordHasher
	limiter  ports.RateLimiter
	opts     Options

	now func() time.Time
}

// NewEngine wires the engine from its ports.
func NewEngine(
	grants ports.GrantRepository,
	unlocks ports.UnlockRepository,
	attempts ports.AttemptLog,
	hasher ports.PasswordHasher,
	limiter ports.RateLimiter,
	opts Options,
) *Engine {
	if opts.AttemptLimit <= 0 {
		opts.AttemptLimit = DefaultAttemptLimit
	}
	if opts.AttemptWindow <= 0 {
		opts.AttemptWindow = DefaultAttemptWindow
	}
	return &Engine{
		grants:   grants,
		unlocks:  unlocks,
		attempts: attempts,
		hasher:   hasher,
		limiter:  limiter,
		opts:     opts,
		now:      time.Now,
	}
}

// Decide is the single decision entry point: admin-class roles go to
// DecideAdmin, everyone else (teachers, students, anonymous) to
// DecideEndUser. End users never edit.
func (e *Engine) Decide(ctx context.Context, actor *domain.Actor, trail *domain.Trail, action domain.Action) (domain.Decision, error) {
	if actor != nil && actor.Role.AdminClass() {
		return e.DecideAdmin(ctx, actor, trail, action)
	}
	if action == domain.ActionEdit {
		if actor == nil {
			return domain.Deny(domain.ReasonNotAuthenticated), nil
		}
		return domain.Deny(domain.ReasonNoAccess), nil
	}
	return e.DecideEndUser(ctx, actor, trail)
}

// unlockState fetches the (actor, trail) unlock and evaluates it
// against the TTL. Every creator/unlock probe in this package goes
// through here; duplicating this logic is how drift bugs start.
func (e *Engine) unlockState(ctx context.Context, actorID domain.ActorID, trailID domain.TrailID) (domain.UnlockState, error) {
	unlock, err := e.unlocks.Get(ctx, actorID, trailID)
	if err != nil {
		return domain.UnlockNone, err
	}
	return unlock.StateAt(e.now(), UnlockTTL), nil
}
