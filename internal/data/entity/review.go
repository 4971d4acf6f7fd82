package entity

import (
	"github.com/google/uuid"
)

// Review holds a single user's score for a title. The (title_id, author_id)
// pair is unique: one review per user per title.
type Review struct {
	BaseSimple
	TitleID  uuid.UUID `db:"title_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Score    int       `db:"score"` // 1-10
	Text     string    `db:"text"`
}
