package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailConfirmation is a single-use signup code. Only the bcrypt hash of
// the code is stored; the plaintext goes out by email and is never kept.
type EmailConfirmation struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	CodeHash  string    `db:"code_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	IsUsed    bool      `db:"is_used"`
}
