package request

type CreateUserRequest struct {
	Username  string  `json:"username" validate:"required,max=150,username"`
	Email     string  `json:"email" validate:"required,email,max=254"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=user moderator admin"`
	Bio       *string `json:"bio,omitempty"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
}

type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,max=150,username"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=user moderator admin"`
	Bio       *string `json:"bio,omitempty"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
}

// UpdateSelfRequest is the /users/me edit shape. It deliberately has no
// role field: a user cannot change their own role.
type UpdateSelfRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,max=150,username"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Bio       *string `json:"bio,omitempty"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
}
