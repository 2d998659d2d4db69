package models

import "gorm.io/gorm"

// Tag labels recipes. Each tag belongs to exactly one user; the owner is
// set at creation and never changes.
type Tag struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	UserID     string `json:"-" gorm:"index;type:varchar(36)"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
