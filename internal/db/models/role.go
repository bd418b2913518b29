package models

import "time"

// Role represents a role in the role-based access control (RBAC) system.
// Roles are named bundles of permissions assignable to users.
// Examples include "customer", "merchant", "admin" and "superadmin".
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`
	// Name is the unique name of the role (e.g., "customer", "merchant").
	Name string `gorm:"unique;size:100;not null"`
	// GuardName is the namespace discriminator for the role. Always "api"
	// in this application; present so multiple guard contexts can coexist.
	GuardName string `gorm:"column:guard_name;size:50;not null;default:'api'"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Role model.
// This overrides GORM's default pluralized table naming.
func (Role) TableName() string {
	return "roles"
}
