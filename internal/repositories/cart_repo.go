package repositories

import "kiosk/internal/models"

// CartRepository defines the interface for cart data access.
//
// AddItem must be atomic per (user, product): two concurrent calls both
// land in the final quantity. Implementations use a store-level
// conditional increment or a serialization point, never an unlocked
// read-modify-write of the whole cart.
type CartRepository interface {
	// GetByUserID returns the user's cart with its items, or
	// ErrRecordNotFound when the user has never added anything. It must
	// not create a cart as a side effect.
	GetByUserID(userID string) (*models.Cart, error)
	// AddItem creates the cart lazily and merges the line: an existing
	// (cart, product) line is incremented by quantity, otherwise a new
	// line is appended.
	AddItem(userID, productID string, quantity int) error
	// RemoveItem deletes the line for productID. A missing line is a
	// no-op; a missing cart is ErrRecordNotFound.
	RemoveItem(userID, productID string) error
	// Clear empties the cart. Idempotent, including for carts that were
	// never created.
	Clear(userID string) error
}
