package repositories

import (
	"errors"
	"fmt"

	"kiosk/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetByUserID retrieves the user's cart with its items preloaded.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items").First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// AddItem merges a line into the user's cart. The increment runs as a
// single INSERT ... ON CONFLICT DO UPDATE SET quantity = quantity +
// excluded.quantity, so concurrent adds for the same product never lose
// an update. The unqualified quantity refers to the existing row in
// both SQLite and PostgreSQL.
func (r *GORMCartRepository) AddItem(userID, productID string, quantity int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		cart, err := r.ensureCart(tx, userID)
		if err != nil {
			return err
		}

		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("quantity + excluded.quantity"),
			}),
		}).Create(&item).Error
		if err != nil {
			return fmt.Errorf("failed to add item to cart for user %s: %w", userID, err)
		}
		return nil
	})
}

// RemoveItem deletes the line for productID from the user's cart.
func (r *GORMCartRepository) RemoveItem(userID, productID string) error {
	cart, err := r.GetByUserID(userID)
	if err != nil {
		return err
	}
	// RowsAffected == 0 means the product was never in the cart; the
	// remove is a no-op by contract.
	res := r.db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove item %s from cart: %w", productID, res.Error)
	}
	return nil
}

// Clear empties the user's cart. A cart that was never created counts
// as already clear.
func (r *GORMCartRepository) Clear(userID string) error {
	cart, err := r.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := r.db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}

// ensureCart finds or creates the user's cart row. The unique index on
// user_id resolves the create race: the loser re-reads the winner's row.
func (r *GORMCartRepository) ensureCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if findErr := tx.First(&cart, "user_id = ?", userID).Error; findErr == nil {
		return &cart, nil
	}
	return nil, fmt.Errorf("failed to ensure cart for user %s: %w", userID, err)
}
