package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/inii-man/foodapp/internal/db/models"
	"github.com/inii-man/foodapp/internal/rbac"
)

// LocalsUser is the fiber.Locals key holding the authenticated user.
const LocalsUser = "currentUser"

// Guard bundles token parsing, user lookup and the rbac resolver into the
// middleware chain. Every deny is explicit: missing identity is 401,
// resolved-but-lacking is 403 and a resolver failure is 500, never an allow.
type Guard struct {
	tokens *TokenIssuer
	users  *Service
	rbac   *rbac.Service
}

// NewGuard creates a guard from its three collaborators.
func NewGuard(tokens *TokenIssuer, users *Service, rbacService *rbac.Service) *Guard {
	return &Guard{tokens: tokens, users: users, rbac: rbacService}
}

// CurrentUser returns the authenticated user stored by Authenticate, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(LocalsUser).(*models.User)
	if !ok {
		return nil
	}

	return user
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Authentication required",
	})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"message": "Forbidden: you don't have permission to access this resource",
	})
}

func checkFailed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Permission check failed",
	})
}

// Authenticate resolves the Bearer token into a user and stores it in
// fiber.Locals for downstream handlers. No token or a bad token is 401.
func (g *Guard) Authenticate(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return unauthenticated(c)
	}

	userID, err := g.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return unauthenticated(c)
	}

	user, err := g.users.GetUserByID(userID)
	if err != nil {
		// A token for a deleted account is indistinguishable from a bad
		// token for the caller.
		return unauthenticated(c)
	}

	c.Locals(LocalsUser, user)

	return c.Next()
}

// RequirePermission creates Fiber middleware that requires a specific
// permission. Must run after Authenticate.
func (g *Guard) RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthenticated(c)
		}

		hasPermission, err := g.rbac.HasPermission(user.ID, permission)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", user.ID).Str("permission", permission).
				Msg("failed to check permission")

			return checkFailed(c)
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", user.ID).Str("permission", permission).
				Msg("user lacks required permission")

			return forbidden(c)
		}

		return c.Next()
	}
}

// RequireAnyPermission creates Fiber middleware that requires at least one of
// the given permissions.
func (g *Guard) RequireAnyPermission(permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthenticated(c)
		}

		hasPermission, err := g.rbac.HasAnyPermission(user.ID, permissions)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", user.ID).Strs("permissions", permissions).
				Msg("failed to check permissions")

			return checkFailed(c)
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", user.ID).Strs("permissions", permissions).
				Msg("user lacks required permissions")

			return forbidden(c)
		}

		return c.Next()
	}
}

// RequireAllPermissions creates Fiber middleware that requires all the given
// permissions.
func (g *Guard) RequireAllPermissions(permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthenticated(c)
		}

		hasPermissions, err := g.rbac.HasAllPermissions(user.ID, permissions)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", user.ID).Strs("permissions", permissions).
				Msg("failed to check permissions")

			return checkFailed(c)
		}

		if !hasPermissions {
			log.Warn().Uint64("user_id", user.ID).Strs("permissions", permissions).
				Msg("user lacks required permissions")

			return forbidden(c)
		}

		return c.Next()
	}
}

// RequireRole creates Fiber middleware that requires a specific role.
func (g *Guard) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthenticated(c)
		}

		hasRole, err := g.rbac.HasRole(user.ID, role)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", user.ID).Str("role", role).
				Msg("failed to check role")

			return checkFailed(c)
		}

		if !hasRole {
			log.Warn().Uint64("user_id", user.ID).Str("role", role).
				Msg("user lacks required role")

			return forbidden(c)
		}

		return c.Next()
	}
}
