package services

import (
	"fmt"
	"strings"

	"recipebox/internal/models"
	"recipebox/internal/repositories"
)

// CatalogService handles business logic for tags and ingredients, the
// attributes recipes are composed from.
type CatalogService struct {
	tagRepo        repositories.TagRepository
	ingredientRepo repositories.IngredientRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(tagRepo repositories.TagRepository, ingredientRepo repositories.IngredientRepository) *CatalogService {
	return &CatalogService{
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
	}
}

// CreateTag creates a tag owned by the given user. Blank names are rejected.
func (s *CatalogService) CreateTag(userID, name string) (*models.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name must not be empty")
	}
	tag := &models.Tag{
		Name:   name,
		UserID: userID,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// ListTags returns the given user's tags, name descending.
func (s *CatalogService) ListTags(userID string) ([]models.Tag, error) {
	return s.tagRepo.ListByUser(userID)
}

// CreateIngredient creates an ingredient owned by the given user.
func (s *CatalogService) CreateIngredient(userID, name string) (*models.Ingredient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name must not be empty")
	}
	ingredient := &models.Ingredient{
		Name:   name,
		UserID: userID,
	}
	if err := s.ingredientRepo.Create(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// ListIngredients returns the given user's ingredients, name descending.
func (s *CatalogService) ListIngredients(userID string) ([]models.Ingredient, error) {
	return s.ingredientRepo.ListByUser(userID)
}
