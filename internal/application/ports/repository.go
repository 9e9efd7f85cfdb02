package ports

import (
	"context"
	"time"

	"github.com/edulane/trailguard/internal/domain"
)

// TrailRepository defines persistence for the access-gating fields of
// trails. Content editing lives elsewhere; this subsystem reads trails
// and rotates their credentials.
type TrailRepository interface {
	GetByID(ctx context.Context, trailID domain.TrailID) (*domain.Trail, error)
	// UpdatePassword sets or clears the password columns. protected
	// must be true iff hash is non-nil.
	UpdatePassword(ctx context.Context, trailID domain.TrailID, hash, hint *string, protected bool) error
}

// GrantRepository resolves the three explicit allow-list relations
// plus student enrollments.
type GrantRepository interface {
	HasDelegatedAdminGrant(ctx context.Context, adminID domain.ActorID, trailID domain.TrailID) (bool, error)
	HasTeacherAssignment(ctx context.Context, trailID domain.TrailID, teacherID domain.ActorID) (bool, error)
	HasStudentGrant(ctx context.Context, studentID domain.ActorID, trailID domain.TrailID) (bool, error)
	IsEnrolled(ctx context.Context, studentID domain.ActorID, trailID domain.TrailID) (bool, error)
}

// UnlockRepository stores time-bound unlocks keyed by (actor, trail).
type UnlockRepository interface {
	// Grant upserts the row, refreshing UnlockedAt to now. The unique
	// pair key serializes concurrent grants for the same pair.
	Grant(ctx context.Context, actorID domain.ActorID, trailID domain.TrailID) error
	// Get returns the row or nil when the pair was never unlocked.
	Get(ctx context.Context, actorID domain.ActorID, trailID domain.TrailID) (*domain.Unlock, error)
	// RevokeAll bulk-deletes every unlock for the trail. Idempotent;
	// a Grant racing a RevokeAll is last-write-wins.
	RevokeAll(ctx context.Context, trailID domain.TrailID) error
}

// AttemptLog is the append-only record of verification attempts.
// Record must never drop silently; infrastructure errors propagate.
type AttemptLog interface {
	Record(ctx context.Context, attempt *domain.Attempt) error
	// ListByTrail filters by trail and time range for external
	// reporting. Zero from/to mean unbounded.
	ListByTrail(ctx context.Context, trailID domain.TrailID, from, to time.Time, limit int) ([]*domain.Attempt, error)
}
