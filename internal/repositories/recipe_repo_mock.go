package repositories

import (
	"fmt"
	"sync"
	"time"

	"recipebox/internal/models"

	"github.com/google/uuid"
)

// MockRecipeRepository is an in-memory implementation of RecipeRepository.
type MockRecipeRepository struct {
	recipes map[string]models.Recipe
	order   []string // insertion order of recipe IDs
	mu      sync.RWMutex
}

// NewMockRecipeRepository creates a new instance of MockRecipeRepository.
func NewMockRecipeRepository() *MockRecipeRepository {
	return &MockRecipeRepository{
		recipes: make(map[string]models.Recipe),
	}
}

// Create adds a new recipe.
func (r *MockRecipeRepository) Create(recipe *models.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = time.Now()
	r.recipes[recipe.ID] = *recipe
	r.order = append(r.order, recipe.ID)
	return nil
}

// ListByUser returns all recipes owned by the given user in insertion order.
func (r *MockRecipeRepository) ListByUser(userID string) ([]models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipeList := make([]models.Recipe, 0)
	for _, id := range r.order {
		recipe, ok := r.recipes[id]
		if ok && recipe.UserID == userID {
			recipeList = append(recipeList, recipe)
		}
	}
	return recipeList, nil
}

// GetByIDForUser returns a recipe by ID within the given user's scope.
func (r *MockRecipeRepository) GetByIDForUser(id, userID string) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipe, ok := r.recipes[id]
	if !ok || recipe.UserID != userID {
		return nil, fmt.Errorf("recipe with ID %s not found", id)
	}
	return &recipe, nil
}

// Update replaces the stored recipe, association sets included.
func (r *MockRecipeRepository) Update(recipe *models.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.recipes[recipe.ID]
	if !ok {
		return fmt.Errorf("recipe with ID %s not found for update", recipe.ID)
	}
	recipe.UpdatedAt = time.Now()
	r.recipes[recipe.ID] = *recipe
	return nil
}

// Delete removes a recipe by ID within the given user's scope.
func (r *MockRecipeRepository) Delete(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipe, ok := r.recipes[id]
	if !ok || recipe.UserID != userID {
		return fmt.Errorf("recipe with ID %s not found for deletion", id)
	}
	delete(r.recipes, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
