package domain

import "github.com/google/uuid"

// ActorID is a value object for actor identity.
type ActorID struct{ uuid.UUID }

// NewActorID creates a new ActorID from uuid.
func NewActorID(id uuid.UUID) ActorID { return ActorID{UUID: id} }

// ParseActorID parses the canonical string form.
func ParseActorID(s string) (ActorID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ActorID{}, err
	}
	return ActorID{UUID: id}, nil
}

// String returns the canonical string form.
func (a ActorID) String() string { return a.UUID.String() }

// Role is the closed set of actor roles. Roles are assigned by the
// identity layer and are read-only here.
type Role string

const (
	RoleStudent          Role = "STUDENT"
	RoleTeacher          Role = "TEACHER"
	RoleDelegatedAdmin   Role = "DELEGATED_ADMIN"
	RoleFullAdmin        Role = "FULL_ADMIN"
	RoleReadOnlyReviewer Role = "READ_ONLY_REVIEWER"
)

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleDelegatedAdmin, RoleFullAdmin, RoleReadOnlyReviewer:
		return true
	}
	return false
}

// AdminClass reports whether r belongs to the administrative actor
// partition. Admin-class and end-user-class actors are decided by
// separate policy functions with different precedence rules.
func (r Role) AdminClass() bool {
	switch r {
	case RoleFullAdmin, RoleDelegatedAdmin, RoleReadOnlyReviewer:
		return true
	}
	return false
}

// Actor is an authenticated caller. A nil *Actor means the request is
// anonymous.
type Actor struct {
	ID   ActorID
	Role Role
}
