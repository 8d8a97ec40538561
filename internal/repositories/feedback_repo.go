package repositories

import "kiosk/internal/models"

// FeedbackRepository defines the interface for product feedback access.
type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	// GetByProductID returns all feedback for a product, newest first.
	GetByProductID(productID string) ([]models.Feedback, error)
}

// ContactRepository defines the interface for contact form messages.
type ContactRepository interface {
	Create(message *models.ContactMessage) error
}
