package ports

// PasswordHasher hashes and verifies passwords (Argon2id). Used by the
// in-memory identity provider; the real provider stores credentials itself.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
