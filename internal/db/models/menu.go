package models

import "time"

// Menu represents a dish a merchant offers for sale.
type Menu struct {
	// ID is the unique identifier for the menu item.
	ID uint64 `gorm:"primaryKey"`
	// Name is the display name of the dish.
	Name string `gorm:"size:100;not null"`
	// Description is an optional free-form description.
	Description string `gorm:"type:text"`
	// Price is the unit price.
	Price float64 `gorm:"type:decimal(10,2);not null"`
	// Image is an optional image URL.
	Image string `gorm:"size:255"`
	// MerchantID is the owning merchant; ownership checks compare against it.
	MerchantID uint64 `gorm:"column:merchant_id;not null"`
	// Merchant is the owning user (loaded via foreign key).
	Merchant User `gorm:"foreignKey:MerchantID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the menu was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the menu was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Menu model.
func (Menu) TableName() string {
	return "menus"
}
