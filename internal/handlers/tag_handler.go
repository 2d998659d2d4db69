package handlers

import (
	"log"

	"recipebox/internal/middleware"
	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(catalog *services.CatalogService) *TagHandler {
	return &TagHandler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the tag routes with the Fiber app.
func (h *TagHandler) RegisterRoutes(router fiber.Router) {
	tagRoutes := router.Group("/recipe/tags")
	tagRoutes.Get("/", h.HandleListTags)
	tagRoutes.Post("/", h.HandleCreateTag)
}

// HandleListTags lists the authenticated user's tags, name descending.
func (h *TagHandler) HandleListTags(c *fiber.Ctx) error {
	tags, err := h.catalog.ListTags(middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing tags: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve tags",
			"error":   err.Error(),
		})
	}
	return c.JSON(newTagResponses(tags))
}

// CreateTagRequest represents the request body for tag creation.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// HandleCreateTag creates a tag owned by the authenticated user.
func (h *TagHandler) HandleCreateTag(c *fiber.Ctx) error {
	var req CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create tag request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	tag, err := h.catalog.CreateTag(middleware.UserID(c), req.Name)
	if err != nil {
		log.Printf("Error creating tag: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create tag",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(TagResponse{ID: tag.ID, Name: tag.Name})
}
