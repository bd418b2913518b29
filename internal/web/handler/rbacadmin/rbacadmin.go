// Package rbacadmin provides the role and permission administration
// endpoints. The whole group is gated on the superadmin role.
package rbacadmin

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/auth"
	"github.com/inii-man/foodapp/internal/config"
	"github.com/inii-man/foodapp/internal/db/controller/permission"
	"github.com/inii-man/foodapp/internal/db/controller/role"
	"github.com/inii-man/foodapp/internal/db/models"
	"github.com/inii-man/foodapp/internal/rbac"
	"github.com/inii-man/foodapp/internal/web/handler"
)

// Path is the base path for rbac administration endpoints.
const Path = handler.RootPath + "rbac"

// Service provides the rbac administration endpoints.
type Service struct {
	db   *gorm.DB
	rbac *rbac.Service
}

// Handler is the exported instance.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, guard *auth.Guard, rbacService *rbac.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.rbac = rbacService

	admin := app.Group(Path, guard.Authenticate, guard.RequireRole(auth.RoleSuperAdmin))

	admin.Get("/roles", s.ListRoles)
	admin.Get("/roles/:id", s.GetRole)
	admin.Get("/permissions", s.ListPermissions)
	admin.Get("/user/me", s.Me)
	admin.Post("/users/:userId/roles", s.AssignRole)
	admin.Delete("/users/:userId/roles/:roleName", s.RemoveRole)
	admin.Post("/users/:userId/permissions", s.GivePermission)
	admin.Delete("/users/:userId/permissions/:permissionName", s.RevokePermission)
	admin.Post("/roles/:roleId/permissions", s.SetRolePermissions)
}

type roleNameInput struct {
	Role string `json:"role" validate:"required"`
}

type permissionNameInput struct {
	Permission string `json:"permission" validate:"required"`
}

type permissionSetInput struct {
	Permissions []string `json:"permissions" validate:"required"`
}

// roleView is a role with its resolved permission names.
type roleView struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func (s *Service) buildRoleView(r *models.Role) (*roleView, error) {
	perms, err := role.Permissions(s.db, r.ID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Name)
	}

	return &roleView{ID: r.ID, Name: r.Name, Permissions: names}, nil
}

// ListRoles returns every role with its permission names.
func (s *Service) ListRoles(c *fiber.Ctx) error {
	roles, err := role.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list roles")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load roles"})
	}

	views := make([]roleView, 0, len(roles))

	for i := range roles {
		view, err := s.buildRoleView(&roles[i])
		if err != nil {
			log.Error().Err(err).Uint("role_id", roles[i].ID).Msg("failed to resolve role permissions")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load roles"})
		}

		views = append(views, *view)
	}

	return c.JSON(views)
}

// GetRole returns a single role with its permission names.
func (s *Service) GetRole(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid role ID"})
	}

	r, err := role.GetByID(s.db, uint(id))
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Role not found"})
		}

		log.Error().Err(err).Uint64("role_id", id).Msg("failed to load role")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load role"})
	}

	view, err := s.buildRoleView(r)
	if err != nil {
		log.Error().Err(err).Uint("role_id", r.ID).Msg("failed to resolve role permissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load role"})
	}

	return c.JSON(view)
}

// ListPermissions returns the full permission catalog.
func (s *Service) ListPermissions(c *fiber.Ctx) error {
	perms, err := permission.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list permissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load permissions"})
	}

	return c.JSON(perms)
}

// Me returns the caller's roles, effective permissions and direct grants.
func (s *Service) Me(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	roles, err := s.rbac.EffectiveRoles(user.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to resolve roles")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load rbac view"})
	}

	perms, err := s.rbac.EffectivePermissions(user.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to resolve permissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load rbac view"})
	}

	var direct []string

	err = s.db.Table("permissions").
		Select("DISTINCT permissions.name").
		Joins("JOIN model_has_permissions ON model_has_permissions.permission_id = permissions.id").
		Where("model_has_permissions.model_id = ? AND model_has_permissions.model_type = ?",
			user.ID, models.PrincipalUser).
		Pluck("permissions.name", &direct).Error
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to resolve direct grants")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load rbac view"})
	}

	return c.JSON(fiber.Map{
		"id":                user.ID,
		"name":              user.Name,
		"email":             user.Email,
		"roles":             roles,
		"permissions":       perms,
		"directPermissions": direct,
	})
}

func parseUserID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("userId"), 10, 64)
}

func (s *Service) respondMutation(c *fiber.Ctx, err error, okMessage string) error {
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": okMessage})
	case errors.Is(err, rbac.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	case errors.Is(err, rbac.ErrRoleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Role not found"})
	case errors.Is(err, rbac.ErrPermissionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Permission not found"})
	default:
		log.Error().Err(err).Msg("rbac mutation failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Operation failed"})
	}
}

// AssignRole assigns a role to a user, idempotently.
func (s *Service) AssignRole(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user ID"})
	}

	var input roleNameInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if errs := handler.Validate(input); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	return s.respondMutation(c, s.rbac.AssignRole(userID, input.Role), "Role assigned")
}

// RemoveRole removes a role from a user.
func (s *Service) RemoveRole(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user ID"})
	}

	return s.respondMutation(c, s.rbac.RemoveRole(userID, c.Params("roleName")), "Role removed")
}

// GivePermission grants a permission directly to a user.
func (s *Service) GivePermission(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user ID"})
	}

	var input permissionNameInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if errs := handler.Validate(input); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	return s.respondMutation(c, s.rbac.GivePermission(userID, input.Permission), "Permission granted")
}

// RevokePermission removes a direct permission grant from a user.
func (s *Service) RevokePermission(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user ID"})
	}

	return s.respondMutation(c,
		s.rbac.RevokePermission(userID, c.Params("permissionName")), "Permission revoked")
}

// SetRolePermissions replaces the permission set of a role. Any unknown
// permission name fails the whole call and leaves the role unchanged.
func (s *Service) SetRolePermissions(c *fiber.Ctx) error {
	roleID, err := strconv.ParseUint(c.Params("roleId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid role ID"})
	}

	var input permissionSetInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if errs := handler.Validate(input); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	err = role.SetPermissions(s.db, uint(roleID), input.Permissions)

	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "Role permissions updated"})
	case errors.Is(err, role.ErrRoleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Role not found"})
	case errors.Is(err, role.ErrPermissionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Permission not found"})
	default:
		log.Error().Err(err).Uint64("role_id", roleID).Msg("failed to set role permissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Operation failed"})
	}
}
