package response

import (
	"time"

	"review-hub/internal/data/entity"
)

// TitleResponse carries the derived rating: nil when the title has no
// reviews yet.
type TitleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description *string           `json:"description,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Genres      []GenreResponse   `json:"genres"`
	Rating      *float64          `json:"rating"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Helper converter
func TitleToResponse(title *entity.Title, category *entity.Category, genres []*entity.Genre, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		Genres:      GenresToResponse(genres),
		Rating:      rating,
		CreatedAt:   title.CreatedAt,
	}

	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}

	return resp
}
