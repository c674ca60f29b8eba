package domain

const (
	RoleMember  = "member"
	RoleOfficer = "officer"
	RoleAdmin   = "admin"
)

// User is an entry of the static principal directory.
type User struct {
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// IsOfficer reports whether the user may own and edit a team.
func (u User) IsOfficer() bool {
	return u.Role == RoleOfficer || u.Role == RoleAdmin
}

// IsAdmin reports whether the user may edit every team.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidUserRole reports whether role is one of member, officer or admin.
func ValidUserRole(role string) bool {
	switch role {
	case RoleMember, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}
