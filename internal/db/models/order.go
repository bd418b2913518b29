package models

import "time"

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	// OrderStatusPending is the initial state after checkout.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusPreparing means a merchant accepted the order.
	OrderStatusPreparing OrderStatus = "preparing"
	// OrderStatusReady means the order can be picked up or delivered.
	OrderStatusReady OrderStatus = "ready"
	// OrderStatusDelivered is the terminal success state.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled is the terminal failure state.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}

	return false
}

// Order represents a customer order with its line items.
type Order struct {
	// ID is the unique identifier for the order.
	ID uint64 `gorm:"primaryKey"`
	// CustomerID is the owning customer; ownership checks compare against it.
	CustomerID uint64 `gorm:"column:customer_id;not null"`
	// Customer is the owning user (loaded via foreign key).
	Customer User `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	// Status is the fulfillment state.
	Status OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	// TotalPrice is the sum over items of quantity * price.
	TotalPrice float64 `gorm:"type:decimal(10,2);not null;default:0"`
	// Items are the order line items.
	Items []OrderItem `gorm:"foreignKey:OrderID"`
	// CreatedAt is the timestamp when the order was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the order was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Order model.
func (Order) TableName() string {
	return "orders"
}
