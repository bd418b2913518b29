package models

import "time"

// CartItem is one entry in a user's shopping cart. The cart is persisted per
// user instead of living in a process-global map so it survives restarts and
// has an explicit lifecycle (cleared on checkout).
type CartItem struct {
	// UserID is the cart owner.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// MenuID is the selected menu item.
	MenuID uint64 `gorm:"primaryKey;column:menu_id"`
	// Menu is the selected menu (loaded via foreign key).
	Menu Menu `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
	// Quantity selected, at least 1.
	Quantity int `gorm:"not null;default:1"`
	// CreatedAt is the timestamp when the item was added (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the item was last changed (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the CartItem model.
func (CartItem) TableName() string {
	return "cart_items"
}
