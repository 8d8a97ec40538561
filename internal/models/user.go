package models

import "gorm.io/gorm"

// Roles an account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a customer or admin account.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Role       string `json:"role" gorm:"type:varchar(16);default:user"`
	gorm.Model `json:"-"`
}
