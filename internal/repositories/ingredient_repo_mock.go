package repositories

import (
	"fmt"
	"sort"
	"sync"

	"recipebox/internal/models"

	"github.com/google/uuid"
)

// MockIngredientRepository is an in-memory implementation of IngredientRepository.
type MockIngredientRepository struct {
	ingredients map[string]models.Ingredient
	mu          sync.RWMutex
}

// NewMockIngredientRepository creates a new instance of MockIngredientRepository.
func NewMockIngredientRepository() *MockIngredientRepository {
	return &MockIngredientRepository{
		ingredients: make(map[string]models.Ingredient),
	}
}

// Create adds a new ingredient.
func (r *MockIngredientRepository) Create(ingredient *models.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	r.ingredients[ingredient.ID] = *ingredient
	return nil
}

// ListByUser returns all ingredients owned by the given user, name descending.
func (r *MockIngredientRepository) ListByUser(userID string) ([]models.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Ingredient, 0)
	for _, ing := range r.ingredients {
		if ing.UserID == userID {
			list = append(list, ing)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name > list[j].Name })
	return list, nil
}

// GetByIDsForUser resolves ingredient IDs within the given user's scope.
func (r *MockIngredientRepository) GetByIDsForUser(ids []string, userID string) ([]models.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Ingredient, 0, len(ids))
	for _, id := range ids {
		ing, ok := r.ingredients[id]
		if !ok || ing.UserID != userID {
			return nil, fmt.Errorf("one or more ingredients not found")
		}
		list = append(list, ing)
	}
	return list, nil
}
