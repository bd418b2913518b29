// Package auth provides the registration, login and profile endpoints.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/auth"
	"github.com/inii-man/foodapp/internal/config"
	"github.com/inii-man/foodapp/internal/db/models"
	"github.com/inii-man/foodapp/internal/rbac"
	"github.com/inii-man/foodapp/internal/web/handler"
)

// Path is the base path for authentication endpoints.
const Path = handler.RootPath + "auth"

// Service provides the authentication endpoints.
type Service struct {
	cfg    *config.Config
	db     *gorm.DB
	guard  *auth.Guard
	users  *auth.Service
	tokens *auth.TokenIssuer
	rbac   *rbac.Service
}

// Handler is the exported instance.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, guard *auth.Guard, rbacService *rbac.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.guard = guard
	s.users = auth.NewService(db)
	s.tokens = auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	s.rbac = rbacService

	app.Post(Path+"/register", s.Register)
	app.Post(Path+"/login", s.Login)
	app.Get(Path+"/me", guard.Authenticate, s.Me)
}

type registerInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=customer merchant"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// profile is the API representation of a user with its resolved sets. Role
// is the legacy single-valued projection: the first assigned role name, kept
// only for old consumers.
type profile struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	Role        string   `json:"role"`
}

func (s *Service) buildProfile(user *models.User) (*profile, error) {
	roles, err := s.rbac.EffectiveRoles(user.ID)
	if err != nil {
		return nil, err
	}

	permissions, err := s.rbac.EffectivePermissions(user.ID)
	if err != nil {
		return nil, err
	}

	legacy := user.LegacyRole
	if len(roles) > 0 {
		legacy = roles[0]
	}

	return &profile{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Roles:       roles,
		Permissions: permissions,
		Role:        legacy,
	}, nil
}

// Register creates a new account, assigns the requested role (customer by
// default) and returns a bearer token with the resolved profile.
func (s *Service) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if errs := handler.Validate(input); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	roleName := input.Role
	if roleName == "" {
		roleName = auth.RoleCustomer
	}

	user, err := s.users.Register(input.Name, input.Email, input.Password, roleName)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email already exists"})
		}

		log.Error().Err(err).Msg("registration failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Registration failed"})
	}

	if err := s.rbac.AssignRole(user.ID, roleName); err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Str("role", roleName).
			Msg("failed to assign role at registration")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Registration failed"})
	}

	return s.respondWithToken(c, user, fiber.StatusCreated, "User registered successfully")
}

// Login verifies credentials and returns a bearer token with the profile.
func (s *Service) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if errs := handler.Validate(input); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	user, err := s.users.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
		}

		log.Error().Err(err).Msg("login failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Login failed"})
	}

	return s.respondWithToken(c, user, fiber.StatusOK, "Login successful")
}

// Me returns the authenticated user's profile with effective roles and
// permissions.
func (s *Service) Me(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	prof, err := s.buildProfile(user)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to resolve profile")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load profile"})
	}

	return c.JSON(prof)
}

func (s *Service) respondWithToken(c *fiber.Ctx, user *models.User, status int, message string) error {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to issue token")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to issue token"})
	}

	prof, err := s.buildProfile(user)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to resolve profile")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load profile"})
	}

	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"token":   token,
		"user":    prof,
	})
}
