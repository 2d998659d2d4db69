package models

import "gorm.io/gorm"

// Ingredient is a recipe component owned by exactly one user.
type Ingredient struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	UserID     string `json:"-" gorm:"index;type:varchar(36)"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
