// Package permission provides CRUD operations for managing permissions in
// the role/permission graph.
package permission

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/db/models"
)

const (
	nameQueryPattern         = "name = ?"
	permissionIDQueryPattern = "permission_id = ?"
)

var (
	// ErrPermissionNotFound is returned when a permission is not found.
	ErrPermissionNotFound = errors.New("permission not found")
	// ErrPermissionNameEmpty is returned when attempting to create a permission with an empty name.
	ErrPermissionNameEmpty = errors.New("permission name cannot be empty")
	// ErrPermissionAlreadyExists is returned when attempting to create a permission that already exists.
	ErrPermissionAlreadyExists = errors.New("permission already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a permission by its name.
func Get(db *gorm.DB, name string) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrPermissionNameEmpty
	}

	var permission models.Permission
	result := db.Where(nameQueryPattern, name).First(&permission)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, result.Error
	}

	return &permission, nil
}

// GetAll retrieves all permissions ordered by name.
func GetAll(db *gorm.DB) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var permissions []models.Permission
	result := db.Order("name ASC").Find(&permissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return permissions, nil
}

// Create creates a new permission in the database.
func Create(db *gorm.DB, name string) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrPermissionNameEmpty
	}

	// Check if permission already exists
	var existing models.Permission
	result := db.Where(nameQueryPattern, name).First(&existing)
	if result.Error == nil {
		return nil, ErrPermissionAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	permission := &models.Permission{
		Name:      name,
		GuardName: "api",
	}

	result = db.Create(permission)
	if result.Error != nil {
		return nil, result.Error
	}

	return permission, nil
}

// FindOrCreate retrieves the permission with the given name, creating it if
// it does not exist yet. Never errors on the duplicate.
func FindOrCreate(db *gorm.DB, name string) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrPermissionNameEmpty
	}

	var permission models.Permission
	result := db.Where(nameQueryPattern, name).
		FirstOrCreate(&permission, models.Permission{Name: name, GuardName: "api"})
	if result.Error != nil {
		return nil, result.Error
	}

	return &permission, nil
}

// Delete removes a permission together with its role mappings and direct
// grants, in one transaction, so no dangling row can reference it.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	var permission models.Permission
	if err := db.First(&permission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPermissionNotFound
		}
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(permissionIDQueryPattern, id).
			Delete(&models.RoleHasPermission{}).Error; err != nil {
			return err
		}

		if err := tx.Where(permissionIDQueryPattern, id).
			Delete(&models.ModelHasPermission{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Permission{}, id).Error
	})
}
