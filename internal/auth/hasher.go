package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns passwords into opaque digests and verifies candidates against
// stored digests. The scheme is a deployment-wide choice: digests produced by
// one implementation are not verifiable by the other.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// SaltedHasher is the default scheme: hex(sha256(password + salt)) with a
// fixed, configuration-supplied salt. It is deterministic and compatible with
// digests stored by earlier deployments. New deployments wanting per-record
// salts should pick BcryptHasher instead.
type SaltedHasher struct {
	salt string
}

// NewSaltedHasher creates a hasher with the given process-wide salt.
func NewSaltedHasher(salt string) *SaltedHasher {
	return &SaltedHasher{salt: salt}
}

// Hash never fails; it accepts any input, including the empty string. Length
// limits are the transport layer's concern.
func (h *SaltedHasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password + h.salt))
	return hex.EncodeToString(sum[:]), nil
}

// Verify recomputes the digest and compares in constant time.
func (h *SaltedHasher) Verify(password, digest string) bool {
	computed, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// BcryptHasher hashes with a per-record random salt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher with the default cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
