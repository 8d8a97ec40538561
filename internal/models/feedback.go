package models

import "time"

// Feedback is a public product review. No auth is required to leave
// one; listings are ordered newest first.
type Feedback struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID string    `json:"product_id" gorm:"index;type:varchar(36)" validate:"required"`
	Name      string    `json:"name" validate:"required,max=100"`
	Comment   string    `json:"comment" validate:"required,max=1000"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" validate:"required,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	Message   string    `json:"message" validate:"required,max=2000"`
	CreatedAt time.Time `json:"created_at"`
}
