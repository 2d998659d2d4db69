package repositories

import (
	"fmt"

	"recipebox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{
		db: db,
	}
}

// Create creates a new recipe in the database along with its tag and
// ingredient links. The attached tags/ingredients must already exist.
func (r *GORMRecipeRepository) Create(recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if err := r.db.Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// ListByUser retrieves all recipes owned by the given user in insertion
// order, with tag and ingredient references preloaded.
func (r *GORMRecipeRepository) ListByUser(userID string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.Preload("Tags").Preload("Ingredients").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes for user %s: %w", userID, err)
	}
	return recipes, nil
}

// GetByIDForUser retrieves a single recipe by ID within the given user's
// scope. A recipe owned by another user reads as not found.
func (r *GORMRecipeRepository) GetByIDForUser(id, userID string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.Preload("Tags").Preload("Ingredients").
		First(&recipe, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("recipe with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get recipe by ID %s: %w", id, err)
	}
	return &recipe, nil
}

// Update saves the recipe's scalar fields and replaces its association sets
// with exactly the tags and ingredients the recipe carries. The whole update
// runs in one transaction so readers never observe a half-replaced set.
func (r *GORMRecipeRepository) Update(recipe *models.Recipe) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Omit("Tags", "Ingredients").Save(recipe)
		if res.Error != nil {
			return fmt.Errorf("failed to update recipe: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("recipe with ID %s not found for update", recipe.ID)
		}

		if err := replaceAssociation(tx, recipe, "Tags", len(recipe.Tags), recipe.Tags); err != nil {
			return err
		}
		if err := replaceAssociation(tx, recipe, "Ingredients", len(recipe.Ingredients), recipe.Ingredients); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// replaceAssociation swaps a many-to-many set. Clear is used for the empty
// case because Replace with no values is a no-op in GORM.
func replaceAssociation(tx *gorm.DB, recipe *models.Recipe, name string, count int, values interface{}) error {
	assoc := tx.Model(recipe).Association(name)
	if count == 0 {
		if err := assoc.Clear(); err != nil {
			return fmt.Errorf("failed to clear %s for recipe %s: %w", name, recipe.ID, err)
		}
		return nil
	}
	if err := assoc.Replace(values); err != nil {
		return fmt.Errorf("failed to replace %s for recipe %s: %w", name, recipe.ID, err)
	}
	return nil
}

// Delete deletes a recipe by its ID within the given user's scope.
func (r *GORMRecipeRepository) Delete(id, userID string) error {
	res := r.db.Delete(&models.Recipe{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("recipe with ID %s not found for deletion", id)
	}
	return nil
}
