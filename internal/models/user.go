package models

// User is an account joined with its role.
type User struct {
	ID            int64  `json:"id" db:"id"`
	FullName      string `json:"fullName" db:"full_name"`
	Login         string `json:"login" db:"login"`
	PasswordPlain string `json:"-" db:"password_plain"` // Never serialize in JSON
	RoleCode      string `json:"roleCode" db:"role_code"`
	RoleName      string `json:"roleName" db:"role_name"`
}

// Role returns the parsed role of the user.
func (u *User) Role() Role {
	if u == nil {
		return RoleGuest
	}
	r := ParseRole(u.RoleCode)
	if r == RoleGuest {
		return RoleClient
	}
	return r
}

// LoginRequest carries the credentials of a login attempt.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
