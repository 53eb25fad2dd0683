// Package credential derives and verifies salted password records.
//
// A record is hex(salt || key) where salt is 32 random bytes and key is a
// 32-byte PBKDF2-HMAC-SHA256 derivative with 10,000 iterations. The salt
// occupies the first 64 hex characters, the derived key the remaining 64.
package credential

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/shelfkeeper/shelfkeeper/internal/shared"
)

const (
	SaltLength = 32
	KeyLength  = 32
	Iterations = 10000

	saltHexLength   = SaltLength * 2
	recordHexLength = (SaltLength + KeyLength) * 2
)

// Hash derives a fresh credential record for the given password. Each call
// uses a new random salt, so two records for the same password differ while
// both verify.
func Hash(password string) string {
	salt := shared.GenerateRandByteArray(SaltLength)
	key := pbkdf2.Key([]byte(password), salt, Iterations, KeyLength, sha256.New)
	return hex.EncodeToString(salt) + hex.EncodeToString(key)
}

// Verify recomputes the derived key for password using the salt embedded in
// record and compares it against the stored key in constant time.
//
// A malformed record (wrong length, non-hex) is a broken storage invariant
// and is reported as an error, never as a failed match.
func Verify(password, record string) (bool, error) {
	if len(record) != recordHexLength {
		return false, fmt.Errorf("credential record has length %d, want %d", len(record), recordHexLength)
	}
	salt, err := hex.DecodeString(record[:saltHexLength])
	if err != nil {
		return false, fmt.Errorf("credential record salt: %w", err)
	}
	expected, err := hex.DecodeString(record[saltHexLength:])
	if err != nil {
		return false, fmt.Errorf("credential record key: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, Iterations, KeyLength, sha256.New)
	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}
