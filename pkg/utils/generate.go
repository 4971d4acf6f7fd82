package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== CONFIRMATION CODE ====================

// GenerateConfirmationCode creates a random hex code of the given length.
// The code is a single-use secret, so it comes from crypto/rand.
func GenerateConfirmationCode(length int) string {
	if length <= 0 {
		length = 16
	}

	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; fall back to
		// a uuid so signup keeps working.
		return uuid.New().String()[:length]
	}

	return hex.EncodeToString(buf)[:length]
}
