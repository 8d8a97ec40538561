package services

import (
	"errors"
	"fmt"
	"log"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
)

// CartService handles business logic for shopping carts. Every
// operation takes the owner's user ID from a verified identity; the
// ownership check happened at the authorization gate. Product lookups
// go through ProductService so cart expansion benefits from its cache.
type CartService struct {
	cartRepo repositories.CartRepository
	products *ProductService
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, products *ProductService) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		products: products,
	}
}

// Get returns the user's cart with product details expanded. A user who
// never added anything gets an empty cart; reading never creates one.
// Lines referencing a deleted product are omitted rather than failing
// the whole read.
func (s *CartService) Get(userID string) (*models.CartView, error) {
	view := &models.CartView{UserID: userID, Items: []models.CartLine{}}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return view, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	for _, item := range cart.Items {
		product, err := s.products.GetProductByID(item.ProductID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// Stale reference to a deleted product.
				log.Printf("Omitting cart line for missing product %s (user %s)", item.ProductID, userID)
				continue
			}
			return nil, fmt.Errorf("failed to expand cart item %s: %w", item.ProductID, err)
		}
		view.Items = append(view.Items, models.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   *product,
		})
	}
	return view, nil
}

// AddItem merges a product into the user's cart: an existing line is
// incremented, otherwise a new line is appended. The increment is
// atomic at the repository level, so concurrent adds never lose an
// update. Returns the updated cart view.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.CartView, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id is required: %w", ErrValidation)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}
	if _, err := s.products.GetProductByID(productID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("product %s does not exist: %w", productID, ErrValidation)
		}
		return nil, fmt.Errorf("failed to validate product %s: %w", productID, err)
	}

	if err := s.cartRepo.AddItem(userID, productID, quantity); err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}
	return s.Get(userID)
}

// RemoveItem drops a product line from the cart. A product that was
// never in the cart is a no-op; a user without a cart gets ErrNotFound.
func (s *CartService) RemoveItem(userID, productID string) (*models.CartView, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id is required: %w", ErrValidation)
	}

	if err := s.cartRepo.RemoveItem(userID, productID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to remove item from cart: %w", err)
	}
	return s.Get(userID)
}

// Clear empties the user's cart. Idempotent: clearing an empty or
// never-created cart succeeds.
func (s *CartService) Clear(userID string) error {
	if err := s.cartRepo.Clear(userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
