package auth

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/happychat/chat-service/internal/apperror"
)

// CostFunc resolves the bcrypt work factor. It is consulted on every
// Hash call rather than once at construction, so the factor can differ
// per environment (tests run with a low one).
type CostFunc func() (int, error)

// Hasher produces and verifies salted bcrypt password hashes.
type Hasher struct {
	cost CostFunc
}

func NewHasher(cost CostFunc) *Hasher {
	return &Hasher{cost: cost}
}

// Hash transforms plaintext into a stored hash. An unresolvable work
// factor or a failing transform both surface as bad-request failures
// with a descriptive message, never as a panic.
func (h *Hasher) Hash(plaintext string) (string, error) {
	cost, err := h.cost()
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve hashing work factor")
		return "", apperror.NewBadRequest(err, "Bad request hashing password: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		return "", apperror.NewBadRequest(err, "Bad request hashing password: %v", err)
	}

	return string(hashed), nil
}

// Verify reports whether plaintext reproduces hashed under the salt
// embedded in it. A mismatch is false, not an error.
func (h *Hasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
