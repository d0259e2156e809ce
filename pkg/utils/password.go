package utils

import (
	"crypto/sha256"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword digests the password with sha256 before bcrypt so that
// inputs longer than bcrypt's 72-byte limit stay usable, then applies
// bcrypt with a fresh salt. The salt is encoded into the result.
func HashPassword(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	hashed, err := bcrypt.GenerateFromPassword(sum[:], bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword recomputes the digest and checks it against the
// stored bcrypt hash. bcrypt's comparison is constant time.
func VerifyPassword(password, hashed string) bool {
	sum := sha256.Sum256([]byte(password))
	return bcrypt.CompareHashAndPassword([]byte(hashed), sum[:]) == nil
}
