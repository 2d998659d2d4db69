package models

import "gorm.io/gorm"

// User represents an account that owns recipes, tags and ingredients.
type User struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name        string `json:"name" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	Password    string `gorm:"type:varchar(255)"` // No json tag for security
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
