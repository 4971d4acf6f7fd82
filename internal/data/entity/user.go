package entity

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// CanModerate reports whether the role may edit or delete content it
// does not own (reviews and comments).
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

type User struct {
	Base
	Username    string  `db:"username"`
	Email       string  `db:"email"`
	Role        Role    `db:"role"`
	IsSuperuser bool    `db:"is_superuser"`
	Bio         *string `db:"bio"`
	FirstName   *string `db:"first_name"`
	LastName    *string `db:"last_name"`
}

// IsAdmin reports whether the user has full administrative rights.
// A superuser is admin-equivalent regardless of the stored role.
func (u *User) IsAdmin() bool {
	return u.IsSuperuser || u.Role == RoleAdmin
}
