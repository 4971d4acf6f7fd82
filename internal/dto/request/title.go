package request

type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Year        int      `json:"year" validate:"required,min=1"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,slug"`
	Genres      []string `json:"genres,omitempty" validate:"omitempty,dive,slug"`
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,max=100"`
	Year        *int      `json:"year,omitempty" validate:"omitempty,min=1"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,slug"`
	Genres      *[]string `json:"genres,omitempty" validate:"omitempty,dive,slug"`
}

// TitleFilterRequest mirrors list query parameters.
type TitleFilterRequest struct {
	Category string `json:"category"`
	Genre    string `json:"genre"`
	Name     string `json:"name"`
	Year     *int   `json:"year"`
}
