// Package passwords provides the bcrypt-backed password hasher.
package passwords

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt reads; the rest is ignored.
const maxPasswordBytes = 72

// DefaultCost matches roughly 100ms per hash on commodity hardware.
const DefaultCost = 10

// BcryptHasher hashes and verifies passwords with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given work factor.
// Out-of-range costs fall back to DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int { return h.cost }

// Hash returns a salted bcrypt hash of password. Each call uses a fresh salt.
func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether password matches hash.
// bcrypt compares digests in constant time; malformed hashes simply fail.
// Inputs longer than bcrypt reads never match, so a shared 72-byte prefix
// is not enough.
func (h *BcryptHasher) Verify(password, hash string) bool {
	if len(password) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
