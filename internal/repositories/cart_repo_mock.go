package repositories

import (
	"sync"

	"kiosk/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
// The single mutex is the per-user serialization point, so concurrent
// AddItem calls merge instead of losing updates.
type MockCartRepository struct {
	carts  map[string]*models.Cart // keyed by userID
	nextID uint
	mu     sync.Mutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{carts: make(map[string]*models.Cart)}
}

// GetByUserID returns a copy of the user's cart.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	return &cp, nil
}

// AddItem merges a line into the user's cart, creating the cart lazily.
func (r *MockCartRepository) AddItem(userID, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		r.nextID++
		cart = &models.Cart{ID: r.nextID, UserID: userID}
		r.carts[userID] = cart
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			return nil
		}
	}
	cart.Items = append(cart.Items, models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	})
	return nil
}

// RemoveItem deletes the line for productID if present.
func (r *MockCartRepository) RemoveItem(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return ErrRecordNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

// Clear empties the user's cart.
func (r *MockCartRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart, ok := r.carts[userID]; ok {
		cart.Items = nil
	}
	return nil
}
