package access

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/trailguard/internal/domain"
)

func TestNeedsPassword_UnprotectedTrail(t *testing.T) {
	f := strictFixture()

	probe, err := f.engine.NeedsPassword(context.Background(), newActor(domain.RoleStudent), publicTrail())
	require.NoError(t, err)
	assert.Equal(t, Probe{}, probe)
}

func TestNeedsPassword_AnonymousOnProtected(t *testing.T) {
	f := strictFixture()

	probe, err := f.engine.NeedsPassword(context.Background(), nil, protectedTrail(nil))
	require.NoError(t, err)
	assert.Equal(t, Probe{NeedsPassword: true}, probe)
}

func TestNeedsPassword_Creator(t *testing.T) {
	f := strictFixture()
	creator := newActor(domain.RoleTeacher)

	probe, err := f.engine.NeedsPassword(context.Background(), creator, protectedTrail(&creator.ID))
	require.NoError(t, err)
	assert.Equal(t, Probe{IsCreator: true}, probe)
}

func TestNeedsPassword_TracksUnlockLifecycle(t *testing.T) {
	f := strictFixture()
	user := newActor(domain.RoleStudent)
	trail := protectedTrail(nil)
	ctx := context.Background()

	probe, err := f.engine.NeedsPassword(ctx, user, trail)
	require.NoError(t, err)
	assert.Equal(t, Probe{NeedsPassword: true}, probe)

	require.NoError(t, f.unlocks.Grant(ctx, user.ID, trail.ID))
	probe, err = f.engine.NeedsPassword(ctx, user, trail)
	require.NoError(t, err)
	assert.Equal(t, Probe{}, probe)

	f.advance(UnlockTTL + time.Minute)
	probe, err = f.engine.NeedsPassword(ctx, user, trail)
	require.NoError(t, err)
	assert.Equal(t, Probe{NeedsPassword: true, IsExpired: true}, probe)
}

// The probe and the decision functions must never drift: whenever the
// probe says no password is needed, DecideEndUser allows, and vice
// versa for the password deny reasons.
func TestNeedsPassword_AgreesWithDecideEndUser(t *testing.T) {
	f := strictFixture()
	user := newActor(domain.RoleStudent)
	trail := protectedTrail(nil)
	ctx := context.Background()

	states := []func(){
		func() {},
		func() { require.NoError(t, f.unlocks.Grant(ctx, user.ID, trail.ID)) },
		func() { f.advance(UnlockTTL + time.Hour) },
	}
	for _, setup := range states {
		setup()
		probe, err := f.engine.NeedsPassword(ctx, user, trail)
		require.NoError(t, err)
		decision, err := f.engine.DecideEndUser(ctx, user, trail)
		require.NoError(t, err)

		assert.Equal(t, !probe.NeedsPassword, decision.Allowed)
		if probe.IsExpired {
			assert.Equal(t, domain.ReasonPasswordExpired, decision.Reason)
		}
	}
}
