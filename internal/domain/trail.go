package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrailID is a value object for trail identity.
type TrailID struct{ uuid.UUID }

// NewTrailID creates a new TrailID from uuid.
func NewTrailID(id uuid.UUID) TrailID { return TrailID{UUID: id} }

// ParseTrailID parses the canonical string form.
func ParseTrailID(s string) (TrailID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TrailID{}, err
	}
	return TrailID{UUID: id}, nil
}

// String returns the canonical string form.
func (t TrailID) String() string { return t.UUID.String() }

// VisibilityMode controls which teachers may see a trail.
type VisibilityMode string

const (
	VisibilityAdminOnly       VisibilityMode = "ADMIN_ONLY"
	VisibilityAllTeachers     VisibilityMode = "ALL_TEACHERS"
	VisibilitySpecificTeacher VisibilityMode = "SPECIFIC_TEACHER"
)

// Trail is a protected content collection. Only the fields that gate
// access live here; the content model is owned elsewhere.
//
// Invariant: PasswordHash is non-nil iff IsPasswordProtected is true.
// CreatorID may be nil for legacy trails created before ownership
// tracking; those get no creator bypass.
type Trail struct {
	ID                  TrailID
	Title               string
	IsRestricted        bool
	IsPasswordProtected bool
	PasswordHash        *string
	PasswordHint        *string
	CreatorID           *ActorID
	Visibility          VisibilityMode
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CreatedBy reports whether actorID is the trail's creator.
func (t *Trail) CreatedBy(actorID ActorID) bool {
	return t.CreatorID != nil && *t.CreatorID == actorID
}
