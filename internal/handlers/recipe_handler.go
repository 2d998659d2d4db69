package handlers

import (
	"fmt"
	"log"

	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	service  *services.RecipeService
	validate *validator.Validate
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the recipe routes with the Fiber app.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router) {
	recipeRoutes := router.Group("/recipe/recipes")
	recipeRoutes.Get("/", h.HandleListRecipes)
	recipeRoutes.Post("/", h.HandleCreateRecipe)
	recipeRoutes.Get("/:id", h.HandleGetRecipe)
	recipeRoutes.Put("/:id", h.HandleReplaceRecipe)
	recipeRoutes.Patch("/:id", h.HandlePatchRecipe)
	recipeRoutes.Delete("/:id", h.HandleDeleteRecipe)
}

// RecipeListItem is the list representation of a recipe: relations appear
// as ID arrays only.
type RecipeListItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	TimeMinutes int      `json:"time_minutes"`
	Price       float64  `json:"price"`
	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients"`
}

// RecipeDetail is the retrieve representation: relations are expanded to
// full objects.
type RecipeDetail struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       float64              `json:"price"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

func newRecipeListItem(recipe *models.Recipe) RecipeListItem {
	tagIDs := make([]string, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tagIDs = append(tagIDs, t.ID)
	}
	ingredientIDs := make([]string, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		ingredientIDs = append(ingredientIDs, ing.ID)
	}
	return RecipeListItem{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Tags:        tagIDs,
		Ingredients: ingredientIDs,
	}
}

func newRecipeDetail(recipe *models.Recipe) RecipeDetail {
	return RecipeDetail{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Tags:        newTagResponses(recipe.Tags),
		Ingredients: newIngredientResponses(recipe.Ingredients),
	}
}

// recipeNotFound reports whether err is the owner-scoped not-found error
// for the given recipe ID.
func recipeNotFound(err error, id string) bool {
	return err.Error() == fmt.Sprintf("recipe with ID %s not found", id)
}

// HandleListRecipes lists the authenticated user's recipes.
func (h *RecipeHandler) HandleListRecipes(c *fiber.Ctx) error {
	recipes, err := h.service.ListRecipes(middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing recipes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve recipes",
			"error":   err.Error(),
		})
	}

	items := make([]RecipeListItem, 0, len(recipes))
	for i := range recipes {
		items = append(items, newRecipeListItem(&recipes[i]))
	}
	return c.JSON(items)
}

// RecipeRequest represents the request body for creating or fully replacing
// a recipe. Omitted tag/ingredient fields mean an empty association set.
type RecipeRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	TimeMinutes int      `json:"time_minutes" validate:"gte=0"`
	Price       float64  `json:"price" validate:"gte=0"`
	Tags        []string `json:"tags" validate:"omitempty,dive,uuid"`
	Ingredients []string `json:"ingredients" validate:"omitempty,dive,uuid"`
}

func (r RecipeRequest) toInput() services.RecipeInput {
	return services.RecipeInput{
		Title:         r.Title,
		TimeMinutes:   r.TimeMinutes,
		Price:         r.Price,
		TagIDs:        r.Tags,
		IngredientIDs: r.Ingredients,
	}
}

// HandleCreateRecipe creates a recipe owned by the authenticated user.
func (h *RecipeHandler) HandleCreateRecipe(c *fiber.Ctx) error {
	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create recipe request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	recipe, err := h.service.CreateRecipe(middleware.UserID(c), req.toInput())
	if err != nil {
		log.Printf("Error creating recipe: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create recipe",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(newRecipeDetail(recipe))
}

// HandleGetRecipe retrieves a single recipe with expanded tags and ingredients.
func (h *RecipeHandler) HandleGetRecipe(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	recipe, err := h.service.GetRecipe(middleware.UserID(c), recipeID)
	if err != nil {
		log.Printf("Error getting recipe by ID %s: %v", recipeID, err)
		if recipeNotFound(err, recipeID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Recipe with ID %s not found", recipeID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve recipe",
			"error":   err.Error(),
		})
	}
	return c.JSON(newRecipeDetail(recipe))
}

// HandleReplaceRecipe fully replaces a recipe. Relation fields absent from
// the payload clear the corresponding association sets.
func (h *RecipeHandler) HandleReplaceRecipe(c *fiber.Ctx) error {
	recipeID := c.Params("id")

	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing replace recipe request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	recipe, err := h.service.ReplaceRecipe(middleware.UserID(c), recipeID, req.toInput())
	if err != nil {
		log.Printf("Error replacing recipe %s: %v", recipeID, err)
		if recipeNotFound(err, recipeID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Recipe with ID %s not found", recipeID),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update recipe",
			"error":   err.Error(),
		})
	}

	return c.JSON(newRecipeDetail(recipe))
}

// PatchRecipeRequest represents the request body for partial updates. Nil
// fields are left untouched; a present tags/ingredients field replaces the
// association set exactly.
type PatchRecipeRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=255"`
	TimeMinutes *int      `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *float64  `json:"price" validate:"omitempty,gte=0"`
	Tags        *[]string `json:"tags" validate:"omitempty,dive,uuid"`
	Ingredients *[]string `json:"ingredients" validate:"omitempty,dive,uuid"`
}

// HandlePatchRecipe applies a partial update to a recipe.
func (h *RecipeHandler) HandlePatchRecipe(c *fiber.Ctx) error {
	recipeID := c.Params("id")

	var req PatchRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing patch recipe request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	patch := services.RecipePatch{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	}
	recipe, err := h.service.PatchRecipe(middleware.UserID(c), recipeID, patch)
	if err != nil {
		log.Printf("Error patching recipe %s: %v", recipeID, err)
		if recipeNotFound(err, recipeID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Recipe with ID %s not found", recipeID),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update recipe",
			"error":   err.Error(),
		})
	}

	return c.JSON(newRecipeDetail(recipe))
}

// HandleDeleteRecipe removes a recipe within the authenticated user's scope.
func (h *RecipeHandler) HandleDeleteRecipe(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	if err := h.service.DeleteRecipe(middleware.UserID(c), recipeID); err != nil {
		log.Printf("Error deleting recipe %s: %v", recipeID, err)
		if err.Error() == fmt.Sprintf("recipe with ID %s not found for deletion", recipeID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Recipe with ID %s not found", recipeID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete recipe",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
