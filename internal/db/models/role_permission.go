package models

// RoleHasPermission represents the many-to-many relationship between roles
// and permissions. When a role or permission is deleted, its rows here are
// removed by the controllers so no dangling assignment survives.
type RoleHasPermission struct {
	// RoleID is the ID of the role in this mapping.
	RoleID uint `gorm:"primaryKey;column:role_id"`
	// PermissionID is the ID of the permission in this mapping.
	PermissionID uint `gorm:"primaryKey;column:permission_id"`
	// Role is the associated role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	// Permission is the associated permission (loaded via foreign key).
	Permission Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the RoleHasPermission model.
// This overrides GORM's default pluralized table naming.
func (RoleHasPermission) TableName() string {
	return "role_has_permissions"
}
