package auth

import (
	"github.com/acamacho/dulceria/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the interactive-login work factor: high enough
// to resist offline brute force, low enough for a web login round trip.
const DefaultBcryptCost = 12

// PasswordHasher hashes and verifies local credentials with bcrypt.
//
// The decoy hash exists for the "user not found" path: comparing the
// candidate against it burns the same bcrypt work as a real comparison, so
// the two failure cases stay indistinguishable in both response and timing.
type PasswordHasher struct {
	cost  int
	decoy []byte
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	seed, err := common.MakeRandHexString(16)
	if err != nil {
		seed = "decoy-fallback-seed"
	}
	decoy, _ := bcrypt.GenerateFromPassword([]byte(seed), cost)
	return &PasswordHasher{cost: cost, decoy: decoy}
}

// Hash returns the bcrypt hash of plain at the configured cost.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares candidate against the stored hash. Any failure — wrong
// password, or an empty/NULL stored hash as found on federation-only
// accounts — yields common.ErrBadCredentials. An empty stored hash never
// verifies, but still burns a decoy comparison.
func (h *PasswordHasher) Verify(storedHash, candidate string) error {
	if storedHash == "" {
		h.CompareDummy(candidate)
		return common.ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)); err != nil {
		return common.ErrBadCredentials
	}
	return nil
}

// CompareDummy performs a full-cost comparison against the decoy hash.
// Called on the "user not found" path so it costs the same as a mismatch.
func (h *PasswordHasher) CompareDummy(candidate string) {
	_ = bcrypt.CompareHashAndPassword(h.decoy, []byte(candidate))
}
