package models

import "gorm.io/gorm"

// Product represents a catalog entry. Description is optional and
// defaults to the empty string.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Image       string  `json:"image" validate:"required,url"`
	Category    string  `json:"category" validate:"required,max=100"`
	gorm.Model  `json:"-"`
}
