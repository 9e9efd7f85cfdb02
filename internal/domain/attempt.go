package domain

import "time"

// Attempt is one password-verification attempt. Rows are append-only;
// they are the forensic trail for brute-force investigation and are
// never mutated or deleted by this subsystem.
type Attempt struct {
	ID        int64
	TrailID   TrailID
	ActorID   ActorID
	Origin    string
	Success   bool
	CreatedAt time.Time
}
