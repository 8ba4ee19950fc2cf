package domain

// User models an account held by the User Store. The password hash never
// leaves the process boundary: it is excluded from JSON and must only be
// inspected through the password hasher.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	IsActive     bool   `json:"is_active"`
}
