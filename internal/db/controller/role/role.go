// Package role provides CRUD operations for managing roles in the
// role/permission graph.
package role

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/db/models"
)

const (
	nameQueryPattern   = "name = ?"
	roleIDQueryPattern = "role_id = ?"
)

var (
	// ErrRoleNotFound is returned when a role is not found.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameEmpty is returned when attempting to create a role with an empty name.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrRoleAlreadyExists is returned when attempting to create a role that already exists.
	ErrRoleAlreadyExists = errors.New("role already exists")
	// ErrPermissionNotFound is returned when a permission named in a
	// set-permissions call does not exist; the role is left unchanged.
	ErrPermissionNotFound = errors.New("permission not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a role by its name.
func Get(db *gorm.DB, name string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	var role models.Role
	result := db.Where(nameQueryPattern, name).First(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	return &role, nil
}

// GetByID retrieves a role by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role
	result := db.First(&role, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	return &role, nil
}

// GetAll retrieves all roles ordered by name.
func GetAll(db *gorm.DB) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role
	result := db.Order("name ASC").Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

// Create creates a new role in the database.
func Create(db *gorm.DB, name string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	// Check if role already exists
	var existing models.Role
	result := db.Where(nameQueryPattern, name).First(&existing)
	if result.Error == nil {
		return nil, ErrRoleAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	role := &models.Role{
		Name:      name,
		GuardName: "api",
	}

	result = db.Create(role)
	if result.Error != nil {
		return nil, result.Error
	}

	return role, nil
}

// FindOrCreate retrieves the role with the given name, creating it if it
// does not exist yet. Calling it twice with the same name returns the same
// row and never errors on the duplicate.
func FindOrCreate(db *gorm.DB, name string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	var role models.Role
	result := db.Where(nameQueryPattern, name).
		FirstOrCreate(&role, models.Role{Name: name, GuardName: "api"})
	if result.Error != nil {
		return nil, result.Error
	}

	return &role, nil
}

// Delete removes a role and all of its assignment rows. Role-permission
// mappings and principal assignments are cleaned up in the same transaction
// so no dangling row can reference the deleted role.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	var role models.Role
	if err := db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(roleIDQueryPattern, id).
			Delete(&models.RoleHasPermission{}).Error; err != nil {
			return err
		}

		if err := tx.Where(roleIDQueryPattern, id).
			Delete(&models.ModelHasRole{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Role{}, id).Error
	})
}

// Permissions retrieves the permissions assigned to a role.
func Permissions(db *gorm.DB, id uint) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var permissions []models.Permission
	result := db.Table("permissions").
		Joins("JOIN role_has_permissions ON role_has_permissions.permission_id = permissions.id").
		Where("role_has_permissions.role_id = ?", id).
		Order("permissions.name ASC").
		Find(&permissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return permissions, nil
}

// SetPermissions replaces the role's entire permission set with the named
// permissions. This is a sync, not an additive grant: existing mappings not
// in names are removed. Any unknown permission name fails the whole call and
// leaves the role unchanged.
func SetPermissions(db *gorm.DB, id uint, names []string) error {
	if db == nil {
		return ErrDBNil
	}

	var role models.Role
	if err := db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}

	// Resolve every name before touching the mapping table.
	var permissions []models.Permission
	if len(names) > 0 {
		if err := db.Where("name IN ?", names).Find(&permissions).Error; err != nil {
			return err
		}

		if len(permissions) != len(names) {
			return ErrPermissionNotFound
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(roleIDQueryPattern, id).
			Delete(&models.RoleHasPermission{}).Error; err != nil {
			return err
		}

		for _, permission := range permissions {
			mapping := models.RoleHasPermission{
				RoleID:       id,
				PermissionID: permission.ID,
			}
			if err := tx.Create(&mapping).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
