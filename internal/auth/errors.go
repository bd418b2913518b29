package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when the email or password is wrong
	// during login. Deliberately does not say which.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailExists is returned when attempting to register with an email
	// that already exists.
	ErrEmailExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidToken is returned when a bearer token fails to parse or verify.
	ErrInvalidToken = errors.New("invalid token")
)
