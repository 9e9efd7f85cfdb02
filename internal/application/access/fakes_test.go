package access

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/edulane/trailguard/internal/application/ports"
	"github.com/edulane/trailguard/internal/domain"
)

func pairKey(actorID domain.ActorID, trailID domain.TrailID) string {
	return actorID.String() + "|" + trailID.String()
}

type fakeGrants struct {
	adminGrants  map[string]bool
	assignments  map[string]bool
	studentRows  map[string]bool
	enrollments  map[string]bool
	err          error
	adminQueries int
}

func newFakeGrants() *fakeGrants {
	return &fakeGrants{
		adminGrants: map[string]bool{},
		assignments: map[string]bool{},
		studentRows: map[string]bool{},
		enrollments: map[string]bool{},
	}
}

func (f *fakeGrants) HasDelegatedAdminGrant(_ context.Context, adminID domain.ActorID, trailID domain.TrailID) (bool, error) {
	f.adminQueries++
	return f.adminGrants[pairKey(adminID, trailID)], f.err
}

func (f *fakeGrants) HasTeacherAssignment(_ context.Context, trailID domain.TrailID, teacherID domain.ActorID) (bool, error) {
	return f.assignments[pairKey(teacherID, trailID)], f.err
}

func (f *fakeGrants) HasStudentGrant(_ context.Context, studentID domain.ActorID, trailID domain.TrailID) (bool, error) {
	return f.studentRows[pairKey(studentID, trailID)], f.err
}

func (f *fakeGrants) IsEnrolled(_ context.Context, studentID domain.ActorID, trailID domain.TrailID) (bool, error) {
	return f.enrollments[pairKey(studentID, trailID)], f.err
}

type fakeUnlocks struct {
	rows    map[string]*domain.Unlock
	now     func() time.Time
	getCall int
	err     error
}

func newFakeUnlocks(now func() time.Time) *fakeUnlocks {
	return &fakeUnlocks{rows: map[string]*domain.Unlock{}, now: now}
}

func (f *fakeUnlocks) Grant(_ context.Context, actorID domain.ActorID, trailID domain.TrailID) error {
	if f.err != nil {
		return f.err
	}
	f.rows[pairKey(actorID, trailID)] = &domain.Unlock{
		ActorID:    actorID,
		TrailID:    trailID,
		UnlockedAt: f.now(),
	}
	return nil
}

func (f *fakeUnlocks) Get(_ context.Context, actorID domain.ActorID, trailID domain.TrailID) (*domain.Unlock, error) {
	f.getCall++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[pairKey(actorID, trailID)], nil
}

func (f *fakeUnlocks) RevokeAll(_ context.Context, trailID domain.TrailID) error {
	for key, row := range f.rows {
		if row.TrailID == trailID {
			delete(f.rows, key)
		}
	}
	return nil
}

type fakeAttempts struct {
	records []*domain.Attempt
	err     error
}

func (f *fakeAttempts) Record(_ context.Context, attempt *domain.Attempt) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, attempt)
	return nil
}

func (f *fakeAttempts) ListByTrail(_ context.Context, trailID domain.TrailID, _, _ time.Time, _ int) ([]*domain.Attempt, error) {
	var out []*domain.Attempt
	for _, a := range f.records {
		if a.TrailID == trailID {
			out = append(out, a)
		}
	}
	return out, f.err
}

// fakeHasher treats "hashed:<pw>" as the digest of <pw>.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }

// fakeLimiter admits limit calls per key, fixed-window style, against
// the engine's test clock.
type fakeLimiter struct {
	counts  map[string]int
	resetIn time.Duration
	checks  int
	err     error
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{counts: map[string]int{}, resetIn: time.Minute}
}

func (f *fakeLimiter) Check(_ context.Context, key string, limit int, _ time.Duration) (ports.RateLimitResult, error) {
	f.checks++
	if f.err != nil {
		return ports.RateLimitResult{}, f.err
	}
	f.counts[key]++
	count := f.counts[key]
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return ports.RateLimitResult{Allowed: count <= limit, Remaining: remaining, ResetIn: f.resetIn}, nil
}

type engineFixture struct {
	engine   *Engine
	grants   *fakeGrants
	unlocks  *fakeUnlocks
	attempts *fakeAttempts
	limiter  *fakeLimiter
	clock    *time.Time
}

func newFixture(opts Options) *engineFixture {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := &start
	now := func() time.Time { return *clock }
	grants := newFakeGrants()
	unlocks := newFakeUnlocks(now)
	attempts := &fakeAttempts{}
	limiter := newFakeLimiter()
	engine := NewEngine(grants, unlocks, attempts, fakeHasher{}, limiter, opts)
	engine.now = now
	return &engineFixture{
		engine:   engine,
		grants:   grants,
		unlocks:  unlocks,
		attempts: attempts,
		limiter:  limiter,
		clock:    clock,
	}
}

func (f *engineFixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func newActor(role domain.Role) *domain.Actor {
	return &domain.Actor{ID: domain.NewActorID(uuid.New()), Role: role}
}

func publicTrail() *domain.Trail {
	return &domain.Trail{
		ID:         domain.NewTrailID(uuid.New()),
		Title:      "open trail",
		Visibility: domain.VisibilityAllTeachers,
	}
}

func protectedTrail(creator *domain.ActorID) *domain.Trail {
	hash := "hashed:correct-horse"
	hint := "blue"
	return &domain.Trail{
		ID:                  domain.NewTrailID(uuid.New()),
		Title:               "locked trail",
		IsPasswordProtected: true,
		PasswordHash:        &hash,
		PasswordHint:        &hint,
		CreatorID:           creator,
		Visibility:          domain.VisibilitySpecificTeacher,
	}
}
