package models

import "gorm.io/gorm"

// Recipe is the central entity of the catalog. It references tags and
// ingredients through many-to-many join tables; referenced tags and
// ingredients must belong to the same user as the recipe itself.
type Recipe struct {
	ID          string       `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string       `json:"title" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	TimeMinutes int          `json:"time_minutes" validate:"gte=0"`
	Price       float64      `json:"price" validate:"gte=0"`
	UserID      string       `json:"-" gorm:"index;type:varchar(36)"`
	Tags        []Tag        `json:"tags" gorm:"many2many:recipe_tags;"`
	Ingredients []Ingredient `json:"ingredients" gorm:"many2many:recipe_ingredients;"`
	gorm.Model               // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
