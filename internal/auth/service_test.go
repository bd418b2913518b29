package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	user, err := service.Register("Alice", "alice@example.com", "secret123", RoleCustomer)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, RoleCustomer, user.LegacyRole)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")

	got, err := service.Authenticate("alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	_, err := service.Register("Alice", "alice@example.com", "secret123", RoleCustomer)
	require.NoError(t, err)

	_, err = service.Register("Other", "alice@example.com", "different", RoleMerchant)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAuthenticateFailures(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	_, err := service.Register("Alice", "alice@example.com", "secret123", RoleCustomer)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "alice@example.com", "nope"},
		{"unknown email", "bob@example.com", "secret123"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Authenticate(tc.email, tc.password)
			// both cases collapse to the same error so callers can't probe accounts
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestGetUserByID(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	user, err := service.Register("Alice", "alice@example.com", "secret123", RoleCustomer)
	require.NoError(t, err)

	got, err := service.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = service.GetUserByID(user.ID + 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
