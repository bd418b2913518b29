package rbac

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/db/models"
)

// Service resolves effective role and permission sets for users. All lookups
// hit the database on every call; a store error always fails the check
// closed rather than defaulting to allow.
type Service struct {
	db *gorm.DB
}

// NewService creates a new rbac service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// HasRole checks if a user has the named role assigned.
func (s *Service) HasRole(userID uint64, role string) (bool, error) {
	var count int64

	err := s.db.Table("roles").
		Joins("JOIN model_has_roles ON model_has_roles.role_id = roles.id").
		Where("model_has_roles.model_id = ? AND model_has_roles.model_type = ? AND roles.name = ?",
			userID, models.PrincipalUser, role).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role: %w", err)
	}

	return count > 0, nil
}

// HasAnyRole checks if a user has at least one of the given roles.
func (s *Service) HasAnyRole(userID uint64, roles ...string) (bool, error) {
	for _, role := range roles {
		has, err := s.HasRole(userID, role)
		if err != nil {
			return false, err
		}

		if has {
			return true, nil
		}
	}

	return false, nil
}

// HasAllRoles checks if a user has all of the given roles.
func (s *Service) HasAllRoles(userID uint64, roles ...string) (bool, error) {
	for _, role := range roles {
		has, err := s.HasRole(userID, role)
		if err != nil {
			return false, err
		}

		if !has {
			return false, nil
		}
	}

	return true, nil
}

// HasPermission checks if a user holds a permission, either as a direct
// grant or through any assigned role. Direct grants are probed first and
// short-circuit the role lookup.
func (s *Service) HasPermission(userID uint64, permission string) (bool, error) {
	var count int64

	// Check direct grants
	err := s.db.Table("permissions").
		Joins("JOIN model_has_permissions ON model_has_permissions.permission_id = permissions.id").
		Where("model_has_permissions.model_id = ? AND model_has_permissions.model_type = ? AND permissions.name = ?",
			userID, models.PrincipalUser, permission).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check direct permission: %w", err)
	}

	if count > 0 {
		return true, nil
	}

	// Check permissions carried by the user's roles
	err = s.db.Table("permissions").
		Joins("JOIN role_has_permissions ON role_has_permissions.permission_id = permissions.id").
		Joins("JOIN model_has_roles ON model_has_roles.role_id = role_has_permissions.role_id").
		Where("model_has_roles.model_id = ? AND model_has_roles.model_type = ? AND permissions.name = ?",
			userID, models.PrincipalUser, permission).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role permission: %w", err)
	}

	return count > 0, nil
}

// HasAnyPermission checks if a user has at least one of the given permissions.
func (s *Service) HasAnyPermission(userID uint64, permissions []string) (bool, error) {
	if len(permissions) == 0 {
		return false, nil
	}

	for _, perm := range permissions {
		has, err := s.HasPermission(userID, perm)
		if err != nil {
			return false, err
		}

		if has {
			return true, nil
		}
	}

	return false, nil
}

// HasAllPermissions checks if a user has all of the given permissions.
func (s *Service) HasAllPermissions(userID uint64, permissions []string) (bool, error) {
	if len(permissions) == 0 {
		return true, nil
	}

	for _, perm := range permissions {
		has, err := s.HasPermission(userID, perm)
		if err != nil {
			return false, err
		}

		if !has {
			return false, nil
		}
	}

	return true, nil
}

// EffectivePermissions retrieves the effective permission set of a user:
// direct grants united with the permissions of every assigned role,
// deduplicated. A user with no grants and no roles yields an empty slice.
func (s *Service) EffectivePermissions(userID uint64) ([]string, error) {
	var direct []string

	err := s.db.Table("permissions").
		Select("DISTINCT permissions.name").
		Joins("JOIN model_has_permissions ON model_has_permissions.permission_id = permissions.id").
		Where("model_has_permissions.model_id = ? AND model_has_permissions.model_type = ?",
			userID, models.PrincipalUser).
		Pluck("permissions.name", &direct).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get direct permissions: %w", err)
	}

	var viaRoles []string

	err = s.db.Table("permissions").
		Select("DISTINCT permissions.name").
		Joins("JOIN role_has_permissions ON role_has_permissions.permission_id = permissions.id").
		Joins("JOIN model_has_roles ON model_has_roles.role_id = role_has_permissions.role_id").
		Where("model_has_roles.model_id = ? AND model_has_roles.model_type = ?",
			userID, models.PrincipalUser).
		Pluck("permissions.name", &viaRoles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get role permissions: %w", err)
	}

	// Merge and deduplicate permissions
	permMap := make(map[string]bool)
	for _, perm := range direct {
		permMap[perm] = true
	}

	for _, perm := range viaRoles {
		permMap[perm] = true
	}

	result := make([]string, 0, len(permMap))
	for perm := range permMap {
		result = append(result, perm)
	}

	return result, nil
}

// EffectiveRoles retrieves the names of all roles assigned to a user.
func (s *Service) EffectiveRoles(userID uint64) ([]string, error) {
	var roles []string

	err := s.db.Table("roles").
		Select("DISTINCT roles.name").
		Joins("JOIN model_has_roles ON model_has_roles.role_id = roles.id").
		Where("model_has_roles.model_id = ? AND model_has_roles.model_type = ?",
			userID, models.PrincipalUser).
		Pluck("roles.name", &roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}

	return roles, nil
}

// CanActOn decides the ownership override used after a coarse permission
// check has already passed: a user holding anyPermission (the "acts on any
// instance" capability, e.g. "menu.view.all") may act on every instance;
// everyone else only on instances they own.
func (s *Service) CanActOn(userID, ownerID uint64, anyPermission string) (bool, error) {
	hasAny, err := s.HasPermission(userID, anyPermission)
	if err != nil {
		return false, err
	}

	if hasAny {
		return true, nil
	}

	return ownerID == userID, nil
}
