package credential

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/trailguard/internal/domain"
	domerrors "github.com/edulane/trailguard/internal/domain/errors"
)

type fakeTrails struct {
	trail *domain.Trail
}

func (f *fakeTrails) GetByID(_ context.Context, trailID domain.TrailID) (*domain.Trail, error) {
	if f.trail == nil || f.trail.ID != trailID {
		return nil, nil
	}
	return f.trail, nil
}

func (f *fakeTrails) UpdatePassword(_ context.Context, _ domain.TrailID, hash, hint *string, protected bool) error {
	f.trail.PasswordHash = hash
	f.trail.PasswordHint = hint
	f.trail.IsPasswordProtected = protected
	return nil
}

type fakeUnlocks struct {
	rows    map[domain.TrailID]int
	revoked []domain.TrailID
}

func (f *fakeUnlocks) Grant(_ context.Context, _ domain.ActorID, trailID domain.TrailID) error {
	f.rows[trailID]++
	return nil
}

func (f *fakeUnlocks) Get(_ context.Context, _ domain.ActorID, _ domain.TrailID) (*domain.Unlock, error) {
	return nil, nil
}

func (f *fakeUnlocks) RevokeAll(_ context.Context, trailID domain.TrailID) error {
	delete(f.rows, trailID)
	f.revoked = append(f.revoked, trailID)
	return nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }

func protectedTrail() *domain.Trail {
	hash := "hashed:old"
	return &domain.Trail{
		ID:                  domain.NewTrailID(uuid.New()),
		IsPasswordProtected: true,
		PasswordHash:        &hash,
		CreatedAt:           time.Now(),
	}
}

func TestSetPassword_RotatesAndRevokes(t *testing.T) {
	trail := protectedTrail()
	trails := &fakeTrails{trail: trail}
	unlocks := &fakeUnlocks{rows: map[domain.TrailID]int{trail.ID: 2}}
	hint := "new hint"

	err := NewSetPassword(trails, unlocks, fakeHasher{}).Execute(context.Background(), trail.ID, "fresh", &hint)
	require.NoError(t, err)

	require.NotNil(t, trail.PasswordHash)
	assert.Equal(t, "hashed:fresh", *trail.PasswordHash)
	assert.True(t, trail.IsPasswordProtected)
	assert.Equal(t, []domain.TrailID{trail.ID}, unlocks.revoked, "rotation must revoke unlocks synchronously")
	assert.Empty(t, unlocks.rows)
}

func TestSetPassword_UnknownTrail(t *testing.T) {
	trails := &fakeTrails{trail: protectedTrail()}
	unlocks := &fakeUnlocks{rows: map[domain.TrailID]int{}}

	err := NewSetPassword(trails, unlocks, fakeHasher{}).Execute(context.Background(), domain.NewTrailID(uuid.New()), "pw", nil)
	require.ErrorIs(t, err, domerrors.ErrTrailNotFound)
	assert.Empty(t, unlocks.revoked)
}

func TestClearPassword_RemovesProtectionAndRevokes(t *testing.T) {
	trail := protectedTrail()
	trails := &fakeTrails{trail: trail}
	unlocks := &fakeUnlocks{rows: map[domain.TrailID]int{trail.ID: 1}}

	uc := NewClearPassword(trails, unlocks)
	err := uc.Execute(context.Background(), trail.ID)
	require.NoError(t, err)

	assert.False(t, trail.IsPasswordProtected)
	assert.Nil(t, trail.PasswordHash)
	assert.Equal(t, []domain.TrailID{trail.ID}, unlocks.revoked)

	// Idempotent: clearing again still succeeds.
	require.NoError(t, uc.Execute(context.Background(), trail.ID))
}
