package repositories

import (
	"fmt"

	"recipebox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMIngredientRepository is a GORM implementation of IngredientRepository.
type GORMIngredientRepository struct {
	db *gorm.DB
}

// NewGORMIngredientRepository creates a new instance of GORMIngredientRepository.
func NewGORMIngredientRepository(db *gorm.DB) *GORMIngredientRepository {
	return &GORMIngredientRepository{
		db: db,
	}
}

// Create creates a new ingredient in the database.
func (r *GORMIngredientRepository) Create(ingredient *models.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	if err := r.db.Create(ingredient).Error; err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}

// ListByUser retrieves all ingredients owned by the given user, name descending.
func (r *GORMIngredientRepository) ListByUser(userID string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.Where("user_id = ?", userID).Order("name DESC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients for user %s: %w", userID, err)
	}
	return ingredients, nil
}

// GetByIDsForUser resolves ingredient IDs within the given user's scope.
// Missing or foreign IDs fail the whole resolution.
func (r *GORMIngredientRepository) GetByIDsForUser(ids []string, userID string) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	var ingredients []models.Ingredient
	if err := r.db.Where("id IN ? AND user_id = ?", ids, userID).Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve ingredients for user %s: %w", userID, err)
	}
	if len(ingredients) != len(ids) {
		return nil, fmt.Errorf("one or more ingredients not found")
	}
	return ingredients, nil
}
