package handlers

import (
	"fmt"

	"recipebox/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserResponse is the wire shape of a user. The password hash never leaves
// the service layer.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TagResponse is the wire shape of a tag.
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IngredientResponse is the wire shape of an ingredient.
type IngredientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{Email: user.Email, Name: user.Name}
}

func newTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

func newIngredientResponses(ingredients []models.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, IngredientResponse{ID: ing.ID, Name: ing.Name})
	}
	return out
}

// validationErrorResponse renders validator failures as a field-keyed map.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
