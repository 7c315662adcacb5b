package auth

import (
	"crypto/sha256"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher creates or compares password hashes
type PasswordHasher interface {
	// Generate hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password.
	// Must be protected against timing attacks.
	Compare(hashedPassword string, password string) error
}

// DefaultHasher is used when no hasher is configured
var DefaultHasher PasswordHasher = BcryptHasher{}

// BcryptHasher hashes with bcrypt over a sha256 prehash, so passwords longer
// than bcrypt's 72 byte limit still hash fully
type BcryptHasher struct{}

func (h BcryptHasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	hash, err := bcrypt.GenerateFromPassword(sum[:], bcrypt.DefaultCost)
	return string(hash), err
}

func (h BcryptHasher) Compare(hashedPassword string, password string) error {
	sum := sha256.Sum256([]byte(password))
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), sum[:])
}
