package handlers

import (
	"log"

	"recipebox/internal/middleware"
	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// IngredientHandler handles HTTP requests for ingredients.
type IngredientHandler struct {
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(catalog *services.CatalogService) *IngredientHandler {
	return &IngredientHandler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the ingredient routes with the Fiber app.
func (h *IngredientHandler) RegisterRoutes(router fiber.Router) {
	ingredientRoutes := router.Group("/recipe/ingredients")
	ingredientRoutes.Get("/", h.HandleListIngredients)
	ingredientRoutes.Post("/", h.HandleCreateIngredient)
}

// HandleListIngredients lists the authenticated user's ingredients, name descending.
func (h *IngredientHandler) HandleListIngredients(c *fiber.Ctx) error {
	ingredients, err := h.catalog.ListIngredients(middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing ingredients: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve ingredients",
			"error":   err.Error(),
		})
	}
	return c.JSON(newIngredientResponses(ingredients))
}

// CreateIngredientRequest represents the request body for ingredient creation.
type CreateIngredientRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// HandleCreateIngredient creates an ingredient owned by the authenticated user.
func (h *IngredientHandler) HandleCreateIngredient(c *fiber.Ctx) error {
	var req CreateIngredientRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create ingredient request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	ingredient, err := h.catalog.CreateIngredient(middleware.UserID(c), req.Name)
	if err != nil {
		log.Printf("Error creating ingredient: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create ingredient",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
}
