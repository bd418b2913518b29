package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// PrincipalUser is the principal kind discriminator stored on assignment
// rows for user principals. The join tables carry the kind so they could
// cover other principal types later; only users exist today.
const PrincipalUser = "User"

// User represents an account in the system: a customer, a merchant or an
// administrator. Which of those a user is comes from the role/permission
// graph, not from a field on this struct.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Name is the user's display name.
	Name string `gorm:"size:100;not null"`
	// Email is the unique login identifier.
	Email string `gorm:"unique;size:255;not null"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255;not null"`
	// LegacyRole is the historic single-valued role column ("customer" or
	// "merchant"). Kept for backward compatibility with old rows and old
	// consumers; the role graph is the source of truth and this field is
	// only written at registration time.
	LegacyRole string `gorm:"column:role;size:20;not null;default:'customer'"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// This function should be used when creating or updating user passwords.
// It uses the default Argon2id parameters for secure password hashing.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// It uses constant-time comparison to prevent timing attacks.
// Returns true if the password matches, false otherwise.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
