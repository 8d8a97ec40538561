package models

import "time"

// OrderStatusPending is the only status this service ever writes.
// Status transitions after creation are out of scope.
const OrderStatusPending = "Pending"

// OrderItem is a point-in-time copy of a cart line. Name and price are
// snapshotted at submission and never re-looked-up, so later catalog
// edits cannot alter a placed order.
type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
}

// Order is an immutable record of a placed order.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	Total     float64     `json:"total"`
	Status    string      `json:"status" gorm:"type:varchar(32)"`
	CreatedAt time.Time   `json:"created_at"`
}
