package entity

import (
	"github.com/google/uuid"
)

// Title is a reviewable work. Rating is intentionally not a column:
// it is derived from review scores at read time.
type Title struct {
	Base
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`
}
