package models

// OrderItem is a single menu line within an order. Price is copied from the
// menu at order time so later menu edits don't rewrite order history.
type OrderItem struct {
	// ID is the unique identifier for the line item.
	ID uint64 `gorm:"primaryKey"`
	// OrderID is the parent order.
	OrderID uint64 `gorm:"column:order_id;not null"`
	// MenuID is the ordered menu item.
	MenuID uint64 `gorm:"column:menu_id;not null"`
	// Menu is the ordered menu (loaded via foreign key).
	Menu Menu `gorm:"foreignKey:MenuID"`
	// Quantity ordered, at least 1.
	Quantity int `gorm:"not null;default:1"`
	// Price is the unit price at order time.
	Price float64 `gorm:"type:decimal(10,2);not null"`
}

// TableName specifies the database table name for the OrderItem model.
func (OrderItem) TableName() string {
	return "order_items"
}
