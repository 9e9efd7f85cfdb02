package errors

import "errors"

// Sentinel errors for infrastructure and data-integrity failures.
// Authorization outcomes never travel on this path: a wrong password
// or a missing grant is data, not an error. Callers fail closed (deny)
// when any of these surface.
var (
	ErrTrailNotFound = errors.New("trail not found")
	// ErrNotPasswordProtected is returned when a password is verified
	// against a trail that has no password. The caller misused the API
	// or raced a rotation; it is never treated as a failed attempt.
	ErrNotPasswordProtected = errors.New("trail is not password protected")
	// ErrCredentialIntegrity flags a trail marked password-protected
	// with no stored hash. Operators must be able to tell this apart
	// from a wrong password.
	ErrCredentialIntegrity = errors.New("password-protected trail has no stored hash")
)
