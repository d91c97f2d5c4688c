package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffhub/employee-api/internal/core/domain"
)

// bcrypt only reads the first 72 bytes of its input.
const maxPasswordBytes = 72

// BcryptHasher hashes passwords with bcrypt. The salt is generated per call
// and embedded in the output.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Out of range values
// fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrHashing, err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. Inputs longer than bcrypt
// reads never match, since Hash refuses to produce a hash for them.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	if len(plaintext) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
