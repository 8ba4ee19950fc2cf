package domain

import "errors"

var (
	// ErrDuplicateEmail signals registration or admin-create with an email
	// that already exists.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned uniformly for a bad email/password
	// pair, whether or not the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated covers every token failure (missing, malformed,
	// expired, bad signature) as well as a resolved user that is absent or
	// inactive. Callers never learn which.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden signals an authenticated user whose role is not in the
	// allowed set for the operation.
	ErrForbidden = errors.New("access forbidden")

	// ErrUserNotFound signals an admin operation targeting an unknown user id.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRole signals a role string outside the known set.
	ErrInvalidRole = errors.New("invalid role")

	// ErrTooManyAttempts signals that the login throttle tripped for an email.
	ErrTooManyAttempts = errors.New("too many login attempts")
)
