package models

// ModelHasPermission represents a direct permission grant to a principal,
// independent of any role. Same shape and uniqueness rule as ModelHasRole.
type ModelHasPermission struct {
	// PermissionID is the ID of the granted permission.
	PermissionID uint `gorm:"primaryKey;column:permission_id"`
	// ModelID is the ID of the principal the permission is granted to.
	ModelID uint64 `gorm:"primaryKey;column:model_id"`
	// ModelType is the principal kind discriminator ("User").
	ModelType string `gorm:"primaryKey;column:model_type;size:50"`
	// Permission is the associated permission (loaded via foreign key).
	Permission Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the ModelHasPermission model.
// This overrides GORM's default pluralized table naming.
func (ModelHasPermission) TableName() string {
	return "model_has_permissions"
}
