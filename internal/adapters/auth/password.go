package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"

	"eventbooking/internal/domain"
)

// DefaultBcryptCost is used when NewBcryptHasher is given a cost outside bcrypt's range.
const DefaultBcryptCost = 12

const saltBytes = 32

// BcryptHasher hashes admin passwords with bcrypt over a salted SHA-256 digest,
// which keeps long passwords under bcrypt's 72-byte input limit.
type BcryptHasher struct {
	cost int
}

var _ domain.PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher returns a BcryptHasher with the given work factor.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// GenerateSalt returns 32 random bytes, hex encoded.
func (h *BcryptHasher) GenerateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "generate salt")
	}
	return hex.EncodeToString(b), nil
}

func (h *BcryptHasher) Hash(salt, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(digest(salt, password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// Compare returns domain.ErrInvalidCredentials when password does not match.
func (h *BcryptHasher) Compare(hash, salt, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), digest(salt, password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return domain.ErrInvalidCredentials
	default:
		return errors.Wrap(err, "compare password")
	}
}

func digest(salt, password string) []byte {
	sum := sha256.Sum256([]byte(salt + password))
	return []byte(hex.EncodeToString(sum[:]))
}
