package handler

// registerRequest covers both self-registration and admin user creation.
// Role is optional and defaults to "user".
type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin legal pm sales user"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// tokenResponse matches the wire contract: an opaque access token plus the
// "bearer" type tag.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// updateProfileRequest uses pointers so "field absent" and "field set to
// empty" stay distinguishable.
type updateProfileRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// updateRoleRequest carries an optional role; nil means no change requested.
type updateRoleRequest struct {
	Role *string `json:"role" validate:"omitempty,oneof=admin legal pm sales user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
