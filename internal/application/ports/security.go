package ports

// PasswordHasher hashes and verifies trail passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
