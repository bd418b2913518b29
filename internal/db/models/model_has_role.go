package models

// ModelHasRole represents a role assignment to a principal. ModelType is the
// principal kind discriminator; see PrincipalUser. A given
// (role, principal, kind) triple appears at most once.
type ModelHasRole struct {
	// RoleID is the ID of the assigned role.
	RoleID uint `gorm:"primaryKey;column:role_id"`
	// ModelID is the ID of the principal the role is assigned to.
	ModelID uint64 `gorm:"primaryKey;column:model_id"`
	// ModelType is the principal kind discriminator ("User").
	ModelType string `gorm:"primaryKey;column:model_type;size:50"`
	// Role is the associated role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the ModelHasRole model.
// This overrides GORM's default pluralized table naming.
func (ModelHasRole) TableName() string {
	return "model_has_roles"
}
