package services

import (
	"fmt"
	"strings"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
)

// FeedbackService handles product reviews and contact messages. Both
// are public: no identity is involved.
type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepository
	contactRepo  repositories.ContactRepository
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(feedbackRepo repositories.FeedbackRepository, contactRepo repositories.ContactRepository) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		contactRepo:  contactRepo,
	}
}

// AddFeedback validates and stores a product review.
func (s *FeedbackService) AddFeedback(feedback *models.Feedback) error {
	if strings.TrimSpace(feedback.ProductID) == "" {
		return fmt.Errorf("product id is required: %w", ErrValidation)
	}
	if strings.TrimSpace(feedback.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrValidation)
	}
	if strings.TrimSpace(feedback.Comment) == "" {
		return fmt.Errorf("comment is required: %w", ErrValidation)
	}
	if feedback.Rating < 1 || feedback.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}
	return nil
}

// ListFeedback returns a product's reviews, newest first.
func (s *FeedbackService) ListFeedback(productID string) ([]models.Feedback, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, fmt.Errorf("product id is required: %w", ErrValidation)
	}
	feedbacks, err := s.feedbackRepo.GetByProductID(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	if feedbacks == nil {
		feedbacks = []models.Feedback{}
	}
	return feedbacks, nil
}

// SubmitContact validates and stores a contact form message.
func (s *FeedbackService) SubmitContact(message *models.ContactMessage) error {
	if strings.TrimSpace(message.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrValidation)
	}
	if strings.TrimSpace(message.Email) == "" {
		return fmt.Errorf("email is required: %w", ErrValidation)
	}
	if strings.TrimSpace(message.Message) == "" {
		return fmt.Errorf("message is required: %w", ErrValidation)
	}
	if err := s.contactRepo.Create(message); err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}
	return nil
}
