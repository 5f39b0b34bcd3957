// Package cryptox implements the credential hasher: a salted, deliberately
// slow key derivation used to store and verify account passwords.
//
// Parameters are fixed so a stored hash can always be re-derived:
// PBKDF2-HMAC-SHA256, 310000 iterations, 32-byte output, 16-byte salt.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/siteback/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize      = 16
	KeySize       = 32
	KeyIterations = 310000
)

func deriveKey(password, salt []byte, iterations, size int) []byte {
	return pbkdf2.Key(password, salt, iterations, size, sha256.New)
}

// GenerateSalt returns a fresh random salt of SaltSize bytes.
func GenerateSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashPassword derives the credential hash for password under salt.
// The same inputs always produce the same output.
func HashPassword(password string, salt []byte) []byte {
	return deriveKey([]byte(password), salt, KeyIterations, KeySize)
}

// VerifyPassword re-derives the hash of password under the stored salt and
// compares it with the stored hash in constant time.
func VerifyPassword(password string, salt, hash []byte) bool {
	candidate := HashPassword(password, salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
