package domain

// Action is what the caller wants to do with a trail.
type Action string

const (
	ActionView Action = "view"
	ActionEdit Action = "edit"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool { return a == ActionView || a == ActionEdit }

// Reason explains an access decision. Deny reasons map to user-facing
// messages; allow reasons say which rule granted access.
type Reason string

const (
	// Deny reasons.
	ReasonNotAuthenticated Reason = "not_authenticated"
	ReasonNoAccess         Reason = "no_access"
	ReasonPasswordRequired Reason = "password_required"
	ReasonPasswordExpired  Reason = "password_expired"

	// Allow reasons.
	ReasonPublic           Reason = "public"
	ReasonCreator          Reason = "creator"
	ReasonPasswordUnlocked Reason = "password_unlocked"
	ReasonEnrolled         Reason = "enrolled"
	ReasonExplicitGrant    Reason = "explicit_grant"
	ReasonAllowed          Reason = "allowed"
)

// Decision is an authorization outcome. Outcomes are data, never
// errors: only infrastructure failures travel on the error path.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow returns an allowing decision with the given reason.
func Allow(reason Reason) Decision { return Decision{Allowed: true, Reason: reason} }

// Deny returns a denying decision with the given reason.
func Deny(reason Reason) Decision { return Decision{Allowed: false, Reason: reason} }
