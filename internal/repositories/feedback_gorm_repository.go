package repositories

import (
	"fmt"
	"time"

	"kiosk/internal/models"

	"gorm.io/gorm"
)

// GORMFeedbackRepository is a GORM implementation of FeedbackRepository.
type GORMFeedbackRepository struct {
	db *gorm.DB
}

// NewGORMFeedbackRepository creates a new instance of GORMFeedbackRepository.
func NewGORMFeedbackRepository(db *gorm.DB) *GORMFeedbackRepository {
	return &GORMFeedbackRepository{db: db}
}

// Create inserts a new feedback entry.
func (r *GORMFeedbackRepository) Create(feedback *models.Feedback) error {
	feedback.CreatedAt = time.Now()
	if err := r.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// GetByProductID returns a product's feedback, newest first.
func (r *GORMFeedbackRepository) GetByProductID(productID string) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").Find(&feedbacks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback for product %s: %w", productID, err)
	}
	return feedbacks, nil
}

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{db: db}
}

// Create inserts a new contact message.
func (r *GORMContactRepository) Create(message *models.ContactMessage) error {
	message.CreatedAt = time.Now()
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}
