package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashSecret creates a bcrypt hash of a secret (confirmation codes are
// stored hashed, never in plaintext).
func HashSecret(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckSecretHash reports whether the secret matches the stored hash.
func CheckSecretHash(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
