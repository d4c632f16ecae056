package ports

// PasswordHasher hashes and verifies driver credentials. The domain only
// ever sees opaque hashes.
type PasswordHasher interface {
	// Hash derives a storable hash from a plaintext password.
	Hash(password string) (string, error)

	// Compare reports whether the plaintext password matches the hash.
	Compare(hash, password string) bool
}
