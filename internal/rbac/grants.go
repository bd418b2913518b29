package rbac

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/db/models"
)

// lookupUser verifies the referenced user exists before a graph mutation.
func (s *Service) lookupUser(userID uint64) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	return nil
}

func (s *Service) lookupRole(name string) (*models.Role, error) {
	var role models.Role
	if err := s.db.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to look up role: %w", err)
	}

	return &role, nil
}

func (s *Service) lookupPermission(name string) (*models.Permission, error) {
	var permission models.Permission
	if err := s.db.Where("name = ?", name).First(&permission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, fmt.Errorf("failed to look up permission: %w", err)
	}

	return &permission, nil
}

// AssignRole assigns the named role to a user. Idempotent: assigning an
// already assigned role changes nothing and creates no duplicate row.
func (s *Service) AssignRole(userID uint64, roleName string) error {
	if err := s.lookupUser(userID); err != nil {
		return err
	}

	role, err := s.lookupRole(roleName)
	if err != nil {
		return err
	}

	assignment := models.ModelHasRole{
		RoleID:    role.ID,
		ModelID:   userID,
		ModelType: models.PrincipalUser,
	}

	err = s.db.Where(&assignment).FirstOrCreate(&assignment).Error
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	return nil
}

// RemoveRole removes the named role from a user. Removing a role the user
// does not hold is not an error.
func (s *Service) RemoveRole(userID uint64, roleName string) error {
	if err := s.lookupUser(userID); err != nil {
		return err
	}

	role, err := s.lookupRole(roleName)
	if err != nil {
		return err
	}

	err = s.db.Where("role_id = ? AND model_id = ? AND model_type = ?",
		role.ID, userID, models.PrincipalUser).
		Delete(&models.ModelHasRole{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove role: %w", err)
	}

	return nil
}

// SyncRoles replaces the user's entire role set with the named roles. Every
// name is resolved before the replacement starts; an unknown name fails the
// whole call and leaves the assignments unchanged.
func (s *Service) SyncRoles(userID uint64, roleNames []string) error {
	if err := s.lookupUser(userID); err != nil {
		return err
	}

	roles := make([]*models.Role, 0, len(roleNames))

	for _, name := range roleNames {
		role, err := s.lookupRole(name)
		if err != nil {
			return err
		}

		roles = append(roles, role)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("model_id = ? AND model_type = ?", userID, models.PrincipalUser).
			Delete(&models.ModelHasRole{}).Error; err != nil {
			return fmt.Errorf("failed to remove existing roles: %w", err)
		}

		for _, role := range roles {
			assignment := models.ModelHasRole{
				RoleID:    role.ID,
				ModelID:   userID,
				ModelType: models.PrincipalUser,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return fmt.Errorf("failed to assign role: %w", err)
			}
		}

		return nil
	})
}

// GivePermission grants a permission directly to a user, independent of any
// role. Idempotent on the exact (permission, user, kind) key.
func (s *Service) GivePermission(userID uint64, permissionName string) error {
	if err := s.lookupUser(userID); err != nil {
		return err
	}

	permission, err := s.lookupPermission(permissionName)
	if err != nil {
		return err
	}

	grant := models.ModelHasPermission{
		PermissionID: permission.ID,
		ModelID:      userID,
		ModelType:    models.PrincipalUser,
	}

	err = s.db.Where(&grant).FirstOrCreate(&grant).Error
	if err != nil {
		return fmt.Errorf("failed to give permission: %w", err)
	}

	return nil
}

// RevokePermission removes a direct permission grant from a user. Grants the
// user holds through roles are unaffected.
func (s *Service) RevokePermission(userID uint64, permissionName string) error {
	if err := s.lookupUser(userID); err != nil {
		return err
	}

	permission, err := s.lookupPermission(permissionName)
	if err != nil {
		return err
	}

	err = s.db.Where("permission_id = ? AND model_id = ? AND model_type = ?",
		permission.ID, userID, models.PrincipalUser).
		Delete(&models.ModelHasPermission{}).Error
	if err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}

	return nil
}

// SyncPermissions replaces the user's entire direct grant set with the named
// permissions. Same all-or-nothing name resolution as SyncRoles.
func (s *Service) SyncPermissions(userID uint64, permissionNames []string) error {
	if err := s.lookupUser(userID); err != nil {
		return err
	}

	permissions := make([]*models.Permission, 0, len(permissionNames))

	for _, name := range permissionNames {
		permission, err := s.lookupPermission(name)
		if err != nil {
			return err
		}

		permissions = append(permissions, permission)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("model_id = ? AND model_type = ?", userID, models.PrincipalUser).
			Delete(&models.ModelHasPermission{}).Error; err != nil {
			return fmt.Errorf("failed to remove existing grants: %w", err)
		}

		for _, permission := range permissions {
			grant := models.ModelHasPermission{
				PermissionID: permission.ID,
				ModelID:      userID,
				ModelType:    models.PrincipalUser,
			}
			if err := tx.Create(&grant).Error; err != nil {
				return fmt.Errorf("failed to give permission: %w", err)
			}
		}

		return nil
	})
}
