package models

import "time"

// Permission represents a specific permission in the authorization system.
// Permission identity is its unique name; the name is an opaque string with
// the resource.action[.qualifier] convention (e.g., "menu.create",
// "order.view.all"). The engine never parses the dots.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey"`
	// Name is the unique permission identifier (e.g., "menu.create").
	Name string `gorm:"unique;size:100;not null"`
	// GuardName is the namespace discriminator, always "api" here.
	GuardName string `gorm:"column:guard_name;size:50;not null;default:'api'"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Permission model.
// This overrides GORM's default pluralized table naming.
func (Permission) TableName() string {
	return "permissions"
}
