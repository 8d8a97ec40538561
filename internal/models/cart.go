package models

// Cart holds one user's pending items. Exactly one cart exists per
// user; it is created lazily on the first add, never by a read.
type Cart struct {
	ID     uint       `json:"-" gorm:"primaryKey"`
	UserID string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID"`
}

// CartItem is a single line in a cart. The composite unique index on
// (cart_id, product_id) guarantees one line per product, which lets
// add-item be a single conflict-update statement.
type CartItem struct {
	ID        uint   `json:"-" gorm:"primaryKey"`
	CartID    uint   `json:"-" gorm:"uniqueIndex:idx_cart_product"`
	ProductID string `json:"product_id" gorm:"uniqueIndex:idx_cart_product;type:varchar(36)"`
	Quantity  int    `json:"quantity"`
}

// CartLine is a cart item with its product expanded for API responses.
// Lines whose product has been deleted are omitted from the view.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// CartView is what GET /cart returns.
type CartView struct {
	UserID string     `json:"user_id"`
	Items  []CartLine `json:"items"`
}
