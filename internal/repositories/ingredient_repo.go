package repositories

import "recipebox/internal/models"

// IngredientRepository defines the interface for ingredient data access,
// scoped to an owning user like TagRepository.
type IngredientRepository interface {
	Create(ingredient *models.Ingredient) error
	ListByUser(userID string) ([]models.Ingredient, error)
	GetByIDsForUser(ids []string, userID string) ([]models.Ingredient, error)
}
