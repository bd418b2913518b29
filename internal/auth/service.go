package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/db/models"
)

// Service provides credential based authentication against the local user store.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Authenticate verifies an email/password pair and returns the user on
// success. Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *Service) Authenticate(email, password string) (*models.User, error) {
	var user models.User

	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// Register creates a new user with a hashed password. The legacy role column
// is written for compatibility; role graph assignment is the caller's job.
func (s *Service) Register(name, email, password, legacyRole string) (*models.User, error) {
	var existing models.User

	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := models.User{
		Name:       name,
		Email:      email,
		Password:   models.HashPassword(password),
		LegacyRole: legacyRole,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *Service) GetUserByID(userID uint64) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}
