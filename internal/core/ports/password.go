package ports

// PasswordMatcher hashes plaintext passwords and verifies them against a
// stored hash. Implementations never expose the stored secret.
type PasswordMatcher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, storedHash string) bool
}
