package auth

import (
	"errors"

	"github.com/mbelov/microblog/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// Hasher wraps bcrypt hashing and verification of user passwords.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost. Costs outside
// the bcrypt range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) > 72 {
		return "", errors.New("password exceeds bcrypt length limit")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks password against a stored hash. A mismatch is reported
// as common.ErrorInvalidCredentials.
func (h *Hasher) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return common.ErrorInvalidCredentials
	}
	return nil
}
