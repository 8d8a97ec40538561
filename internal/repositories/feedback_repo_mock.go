package repositories

import (
	"sync"
	"time"

	"kiosk/internal/models"
)

// MockFeedbackRepository is an in-memory implementation of FeedbackRepository.
type MockFeedbackRepository struct {
	feedbacks []models.Feedback
	nextID    uint
	mu        sync.RWMutex
}

// NewMockFeedbackRepository creates a new instance of MockFeedbackRepository.
func NewMockFeedbackRepository() *MockFeedbackRepository {
	return &MockFeedbackRepository{}
}

// Create appends a new feedback entry.
func (r *MockFeedbackRepository) Create(feedback *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	feedback.ID = r.nextID
	feedback.CreatedAt = time.Now()
	r.feedbacks = append(r.feedbacks, *feedback)
	return nil
}

// GetByProductID returns a product's feedback, newest first.
func (r *MockFeedbackRepository) GetByProductID(productID string) ([]models.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Feedback
	// Appended in order, so walk backwards for newest first.
	for i := len(r.feedbacks) - 1; i >= 0; i-- {
		if r.feedbacks[i].ProductID == productID {
			out = append(out, r.feedbacks[i])
		}
	}
	return out, nil
}
