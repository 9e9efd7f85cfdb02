package domain

import "time"

// Unlock is the time-bound state created by a correct password
// submission. One row per (actor, trail); re-verification refreshes
// UnlockedAt instead of stacking rows. All rows for a trail are
// deleted when its password changes.
type Unlock struct {
	ActorID    ActorID
	TrailID    TrailID
	UnlockedAt time.Time
}

// UnlockState is the result of checking an unlock against the TTL.
// Expired is a distinct state from never-unlocked: the two map to
// different user-facing messages and must not be collapsed.
type UnlockState int

const (
	UnlockNone UnlockState = iota
	UnlockValid
	UnlockExpired
)

// StateAt evaluates the unlock against ttl at the given instant.
func (u *Unlock) StateAt(now time.Time, ttl time.Duration) UnlockState {
	if u == nil {
		return UnlockNone
	}
	if now.Sub(u.UnlockedAt) <= ttl {
		return UnlockValid
	}
	return UnlockExpired
}
