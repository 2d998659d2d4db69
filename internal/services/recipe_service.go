package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"recipebox/internal/models"
	"recipebox/internal/repositories"
	"recipebox/pkg/rabbitmq"
)

// RecipeInput carries the full field set for creating or replacing a recipe.
// Relation fields absent from the request stay nil/empty here, which under
// full-update semantics clears the corresponding association set.
type RecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         float64
	TagIDs        []string
	IngredientIDs []string
}

// RecipePatch carries a partial field set; nil means "leave untouched".
// A non-nil (even empty) relation slice replaces the association set.
type RecipePatch struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	TagIDs        *[]string
	IngredientIDs *[]string
}

// RecipeService handles business logic for recipes, including resolution of
// tag and ingredient references within the owner's scope.
type RecipeService struct {
	recipeRepo     repositories.RecipeRepository
	tagRepo        repositories.TagRepository
	ingredientRepo repositories.IngredientRepository
	mqClient       *rabbitmq.Client
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(
	recipeRepo repositories.RecipeRepository,
	tagRepo repositories.TagRepository,
	ingredientRepo repositories.IngredientRepository,
	mqClient *rabbitmq.Client,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		mqClient:       mqClient,
	}
}

// ListRecipes returns the given user's recipes in insertion order.
func (s *RecipeService) ListRecipes(userID string) ([]models.Recipe, error) {
	return s.recipeRepo.ListByUser(userID)
}

// GetRecipe returns a single recipe with tags and ingredients loaded.
// Recipes owned by other users read as not found.
func (s *RecipeService) GetRecipe(userID, id string) (*models.Recipe, error) {
	return s.recipeRepo.GetByIDForUser(id, userID)
}

func validateRecipeFields(title string, timeMinutes int, price float64) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if timeMinutes < 0 {
		return fmt.Errorf("time_minutes must not be negative")
	}
	if price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

// CreateRecipe creates a recipe for the given user. Tag and ingredient IDs
// are resolved within the user's own scope, so a reference to another
// user's entity fails the whole create.
func (s *RecipeService) CreateRecipe(userID string, input RecipeInput) (*models.Recipe, error) {
	if err := validateRecipeFields(input.Title, input.TimeMinutes, input.Price); err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.GetByIDsForUser(input.TagIDs, userID)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ingredientRepo.GetByIDsForUser(input.IngredientIDs, userID)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		UserID:      userID,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}

	s.publishEvent("recipe.created", map[string]interface{}{
		"recipeID": recipe.ID,
		"userID":   recipe.UserID,
		"title":    recipe.Title,
	})

	return recipe, nil
}

// ReplaceRecipe applies full-update semantics: every scalar field is
// overwritten and the tag/ingredient sets become exactly what the input
// carries. An input without tag IDs therefore clears the tag set.
func (s *RecipeService) ReplaceRecipe(userID, id string, input RecipeInput) (*models.Recipe, error) {
	if err := validateRecipeFields(input.Title, input.TimeMinutes, input.Price); err != nil {
		return nil, err
	}

	recipe, err := s.recipeRepo.GetByIDForUser(id, userID)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.GetByIDsForUser(input.TagIDs, userID)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ingredientRepo.GetByIDsForUser(input.IngredientIDs, userID)
	if err != nil {
		return nil, err
	}

	recipe.Title = input.Title
	recipe.TimeMinutes = input.TimeMinutes
	recipe.Price = input.Price
	recipe.Tags = tags
	recipe.Ingredients = ingredients

	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// PatchRecipe applies partial-update semantics: only supplied fields change.
// A supplied relation slice replaces the association set exactly; an omitted
// one keeps the recipe's current set.
func (s *RecipeService) PatchRecipe(userID, id string, patch RecipePatch) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByIDForUser(id, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		recipe.Title = *patch.Title
	}
	if patch.TimeMinutes != nil {
		recipe.TimeMinutes = *patch.TimeMinutes
	}
	if patch.Price != nil {
		recipe.Price = *patch.Price
	}
	if err := validateRecipeFields(recipe.Title, recipe.TimeMinutes, recipe.Price); err != nil {
		return nil, err
	}

	if patch.TagIDs != nil {
		tags, err := s.tagRepo.GetByIDsForUser(*patch.TagIDs, userID)
		if err != nil {
			return nil, err
		}
		recipe.Tags = tags
	}
	if patch.IngredientIDs != nil {
		ingredients, err := s.ingredientRepo.GetByIDsForUser(*patch.IngredientIDs, userID)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}

	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// DeleteRecipe removes a recipe within the given user's scope.
func (s *RecipeService) DeleteRecipe(userID, id string) error {
	return s.recipeRepo.Delete(id, userID)
}

// publishEvent sends a domain event to the broker. Publication is
// fire-and-forget: a missing client or a failed publish never fails the
// request that produced the event.
func (s *RecipeService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish("recipe", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
