package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength = 16
	keyLength  = 32
	iterations = 100_000
)

// ErrMalformedHash marks a stored password hash that cannot be decoded or
// has the wrong length. It signals a corrupted record, not a wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

// PasswordHasher derives and verifies salted PBKDF2-SHA256 password digests.
// The stored format is base64(salt || digest) with a 16-byte salt and a
// 32-byte digest.
type PasswordHasher struct {
	iterations int
}

// NewPasswordHasher creates a hasher with the default iteration count.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{iterations: iterations}
}

// Hash derives a digest from the password under a fresh random salt.
// Two calls with the same password never produce the same output.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest := pbkdf2.Key([]byte(password), salt, h.iterations, keyLength, sha256.New)

	combined := make([]byte, 0, saltLength+keyLength)
	combined = append(combined, salt...)
	combined = append(combined, digest...)

	return base64.StdEncoding.EncodeToString(combined), nil
}

// Verify reports whether password matches the stored hash. A false result
// with a nil error means the password is wrong; ErrMalformedHash means the
// stored value itself is corrupt.
func (h *PasswordHasher) Verify(password, stored string) (bool, error) {
	combined, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return false, ErrMalformedHash
	}
	if len(combined) != saltLength+keyLength {
		return false, ErrMalformedHash
	}

	salt := combined[:saltLength]
	digest := pbkdf2.Key([]byte(password), salt, h.iterations, keyLength, sha256.New)

	return hmac.Equal(digest, combined[saltLength:]), nil
}
