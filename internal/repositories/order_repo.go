package repositories

import "kiosk/internal/models"

// OrderRepository defines the interface for order data access. Orders
// are append-only: there is no update or delete path.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
}
