package domain

import "fmt"

// Role is the closed set of roles a user can hold. Authorization decisions
// are plain set-membership checks on this type; admin is not implicitly
// granted role-specific access unless the allowed set names it.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleLegal Role = "legal"
	RolePM    Role = "pm"
	RoleSales Role = "sales"
	RoleUser  Role = "user"
)

// ParseRole converts a wire-level string into a Role. An empty string maps
// to RoleUser, the registration default.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleUser, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLegal, RolePM, RoleSales, RoleUser:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
