package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/auth"
	"github.com/inii-man/foodapp/internal/config"
	"github.com/inii-man/foodapp/internal/db/controller/permission"
	"github.com/inii-man/foodapp/internal/db/controller/role"
	"github.com/inii-man/foodapp/internal/db/models"
	"github.com/inii-man/foodapp/internal/rbac"
)

// permissionCatalog is every permission the API refers to.
var permissionCatalog = []string{ //nolint:gochecknoglobals
	auth.PermMenuView, auth.PermMenuCreate, auth.PermMenuUpdate,
	auth.PermMenuDelete, auth.PermMenuViewAll,
	auth.PermOrderView, auth.PermOrderCreate, auth.PermOrderUpdate,
	auth.PermOrderViewAll, auth.PermOrderUpdateStatus,
	auth.PermCartView, auth.PermCartAdd, auth.PermCartUpdate, auth.PermCartDelete,
	auth.PermUserView, auth.PermUserCreate, auth.PermUserUpdate, auth.PermUserDelete,
	auth.PermRoleView, auth.PermRoleCreate, auth.PermRoleUpdate, auth.PermRoleDelete,
	auth.PermPermissionView, auth.PermPermissionAssign,
}

// rolePermissions maps each default role to its permission set. Admin and
// superadmin get the whole catalog.
var rolePermissions = map[string][]string{ //nolint:gochecknoglobals
	auth.RoleCustomer: {
		auth.PermMenuView,
		auth.PermOrderView, auth.PermOrderCreate,
		auth.PermCartView, auth.PermCartAdd, auth.PermCartUpdate, auth.PermCartDelete,
	},
	auth.RoleMerchant: {
		auth.PermMenuView, auth.PermMenuCreate, auth.PermMenuUpdate, auth.PermMenuDelete,
		auth.PermOrderView, auth.PermOrderViewAll, auth.PermOrderUpdateStatus,
		auth.PermCartView, auth.PermCartAdd, auth.PermCartUpdate, auth.PermCartDelete,
	},
	auth.RoleAdmin:      permissionCatalog,
	auth.RoleSuperAdmin: permissionCatalog,
}

// Seed populates the authorization graph: the permission catalog, the default
// roles with their sets, the superadmin account and the legacy role
// migration. Every step is idempotent, re-running changes nothing.
func Seed(cfg *config.Config, db *gorm.DB) error {
	for _, name := range permissionCatalog {
		if _, err := permission.FindOrCreate(db, name); err != nil {
			return fmt.Errorf("failed to seed permission %q: %w", name, err)
		}
	}

	for roleName, perms := range rolePermissions {
		r, err := role.FindOrCreate(db, roleName)
		if err != nil {
			return fmt.Errorf("failed to seed role %q: %w", roleName, err)
		}

		if err := role.SetPermissions(db, r.ID, perms); err != nil {
			return fmt.Errorf("failed to seed permissions of role %q: %w", roleName, err)
		}
	}

	if err := seedSuperAdmin(cfg, db); err != nil {
		return err
	}

	return migrateLegacyRoles(db)
}

// seedSuperAdmin creates the bootstrap superadmin account from the config
// credentials. An existing account gets its password refreshed when the
// configured one no longer matches, so the config stays authoritative.
func seedSuperAdmin(cfg *config.Config, db *gorm.DB) error {
	var user models.User

	err := db.Where("email = ?", cfg.Auth.SuperAdminEmail).
		Attrs(models.User{
			Name:       cfg.Auth.SuperAdminName,
			Password:   models.HashPassword(cfg.Auth.SuperAdminPassword),
			LegacyRole: auth.RoleSuperAdmin,
		}).
		FirstOrCreate(&user).Error
	if err != nil {
		return fmt.Errorf("failed to seed superadmin user: %w", err)
	}

	if !user.VerifyPassword(cfg.Auth.SuperAdminPassword) {
		user.Password = models.HashPassword(cfg.Auth.SuperAdminPassword)

		if err := db.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to refresh superadmin password: %w", err)
		}

		log.Info().Str("email", user.Email).Msg("superadmin password refreshed from config")
	}

	rbacService := rbac.NewService(db)
	if err := rbacService.AssignRole(user.ID, auth.RoleSuperAdmin); err != nil {
		return fmt.Errorf("failed to assign superadmin role: %w", err)
	}

	return nil
}

// migrateLegacyRoles assigns the graph role matching the historic single
// role column for every user that has no graph roles yet. Users that already
// participate in the graph are left alone.
func migrateLegacyRoles(db *gorm.DB) error {
	var users []models.User

	err := db.Where(
		"id NOT IN (?)",
		db.Table("model_has_roles").
			Select("model_id").
			Where("model_type = ?", models.PrincipalUser),
	).Find(&users).Error
	if err != nil {
		return fmt.Errorf("failed to find users without graph roles: %w", err)
	}

	rbacService := rbac.NewService(db)

	for i := range users {
		legacy := users[i].LegacyRole
		if legacy == "" {
			legacy = auth.RoleCustomer
		}

		if err := rbacService.AssignRole(users[i].ID, legacy); err != nil {
			log.Warn().Err(err).Uint64("user_id", users[i].ID).Str("role", legacy).
				Msg("skipping legacy role migration for user")

			continue
		}
	}

	return nil
}
