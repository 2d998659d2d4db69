package repositories

import "recipebox/internal/models"

// RecipeRepository defines the interface for recipe data access. All reads
// and writes are scoped to the owning user.
type RecipeRepository interface {
	Create(recipe *models.Recipe) error
	ListByUser(userID string) ([]models.Recipe, error)
	GetByIDForUser(id, userID string) (*models.Recipe, error)
	// Update saves the recipe's scalar fields and replaces its tag and
	// ingredient association sets with whatever the recipe carries, in a
	// single transaction.
	Update(recipe *models.Recipe) error
	Delete(id, userID string) error
}
