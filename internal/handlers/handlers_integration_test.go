package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"recipebox/internal/handlers"
	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/repositories"
	"recipebox/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp sets up a Fiber app for testing with in-memory SQLite and all
// handlers/services wired the same way main does it.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	// Configure Viper for testing
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	// A test-scoped in-memory database keeps tests independent
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Ingredient{}, &models.Recipe{})
	if err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	// Initialize Repositories
	userRepo := repositories.NewGORMUserRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	ingredientRepo := repositories.NewGORMIngredientRepository(db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)

	// Initialize Services (nil for the RabbitMQ client)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userService, jwtSecret)
	catalogService := services.NewCatalogService(tagRepo, ingredientRepo)
	recipeService := services.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, nil)

	// Initialize Handlers
	userHandler := handlers.NewUserHandler(userService, authService)
	tagHandler := handlers.NewTagHandler(catalogService)
	ingredientHandler := handlers.NewIngredientHandler(catalogService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	app := fiber.New()

	apiV1 := app.Group("/api/v1")
	userHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	userHandler.RegisterMeRoutes(protectedRoutes)
	tagHandler.RegisterRoutes(protectedRoutes)
	ingredientHandler.RegisterRoutes(protectedRoutes)
	recipeHandler.RegisterRoutes(protectedRoutes)

	return app
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1) // -1 for no timeout
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates a user through the API and returns a bearer token.
func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/user/create", "", map[string]string{
		"email":    email,
		"password": "Testpass123",
		"name":     "Test User",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/user/token", "", map[string]string{
		"email":    email,
		"password": "Testpass123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var tokenResp map[string]string
	decodeBody(t, resp, &tokenResp)
	assert.NotEmpty(t, tokenResp["token"])
	return tokenResp["token"]
}

func createTag(t *testing.T, app *fiber.App, token, name string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/recipe/tags/", token, map[string]string{"name": name})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var tag handlers.TagResponse
	decodeBody(t, resp, &tag)
	return tag.ID
}

func createIngredient(t *testing.T, app *fiber.App, token, name string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/recipe/ingredients/", token, map[string]string{"name": name})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var ingredient handlers.IngredientResponse
	decodeBody(t, resp, &ingredient)
	return ingredient.ID
}

func TestUserCreate(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/user/create", "", map[string]string{
		"email":    "new@GMAIL.com",
		"password": "Testpass123",
		"name":     "New User",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "new@gmail.com", body["email"]) // domain lowercased
	assert.Equal(t, "New User", body["name"])
	assert.NotContains(t, body, "password")

	// Weak password is rejected: no uppercase, no digit
	resp = doJSON(t, app, http.MethodPost, "/api/v1/user/create", "", map[string]string{
		"email":    "weak@gmail.com",
		"password": "passtest",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Duplicate email is rejected
	resp = doJSON(t, app, http.MethodPost, "/api/v1/user/create", "", map[string]string{
		"email":    "new@gmail.com",
		"password": "Testpass123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestUserToken(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/user/create", "", map[string]string{
		"email":    "token@gmail.com",
		"password": "Testpass123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Valid credentials yield a token
	resp = doJSON(t, app, http.MethodPost, "/api/v1/user/token", "", map[string]string{
		"email":    "token@gmail.com",
		"password": "Testpass123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var tokenResp map[string]interface{}
	decodeBody(t, resp, &tokenResp)
	assert.Contains(t, tokenResp, "token")
	assert.NotEmpty(t, tokenResp["token"])

	// Any single wrong field yields 400 with no token in the body
	badBodies := []map[string]string{
		{"email": "token@gmail.com", "password": "WrongPass1"},
		{"email": "unknown@gmail.com", "password": "Testpass123"},
		{"email": "token@gmail.com", "password": ""},
	}
	for _, bad := range badBodies {
		resp = doJSON(t, app, http.MethodPost, "/api/v1/user/token", "", bad)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body map[string]interface{}
		decodeBody(t, resp, &body)
		assert.NotContains(t, body, "token")
	}
}

func TestUserMe(t *testing.T) {
	app := setupApp(t)

	// Unauthenticated access is refused
	resp := doJSON(t, app, http.MethodGet, "/api/v1/user/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	token := registerAndLogin(t, app, "me@gmail.com")

	resp = doJSON(t, app, http.MethodGet, "/api/v1/user/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var me handlers.UserResponse
	decodeBody(t, resp, &me)
	assert.Equal(t, "me@gmail.com", me.Email)
	assert.Equal(t, "Test User", me.Name)

	// Partial profile update: name and password
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/user/me", token, map[string]string{
		"name":     "Renamed",
		"password": "Newpass456",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &me)
	assert.Equal(t, "Renamed", me.Name)
	assert.Equal(t, "me@gmail.com", me.Email)

	// The new password authenticates
	resp = doJSON(t, app, http.MethodPost, "/api/v1/user/token", "", map[string]string{
		"email":    "me@gmail.com",
		"password": "Newpass456",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// POST on the profile endpoint is not allowed
	resp = doJSON(t, app, http.MethodPost, "/api/v1/user/me", token, map[string]string{"name": "x"})
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	resp.Body.Close()
}

func TestTagsAPI(t *testing.T) {
	app := setupApp(t)

	// Login required
	resp := doJSON(t, app, http.MethodGet, "/api/v1/recipe/tags/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	token := registerAndLogin(t, app, "tags@gmail.com")
	otherToken := registerAndLogin(t, app, "tags2@gmail.com")

	createTag(t, app, token, "Vegan")
	createTag(t, app, token, "Pizza")
	createTag(t, app, otherToken, "Dessert")

	// Blank name is rejected
	resp = doJSON(t, app, http.MethodPost, "/api/v1/recipe/tags/", token, map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// List is owner-scoped and sorted by name descending
	resp = doJSON(t, app, http.MethodGet, "/api/v1/recipe/tags/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var tags []handlers.TagResponse
	decodeBody(t, resp, &tags)
	assert.Len(t, tags, 2)
	assert.Equal(t, "Vegan", tags[0].Name)
	assert.Equal(t, "Pizza", tags[1].Name)
}

func TestIngredientsAPI(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/recipe/ingredients/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	token := registerAndLogin(t, app, "ingredients@gmail.com")
	otherToken := registerAndLogin(t, app, "ingredients2@gmail.com")

	createIngredient(t, app, token, "Salt")
	createIngredient(t, app, token, "Tomato")
	createIngredient(t, app, otherToken, "Sugar")

	resp = doJSON(t, app, http.MethodPost, "/api/v1/recipe/ingredients/", token, map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/recipe/ingredients/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var ingredients []handlers.IngredientResponse
	decodeBody(t, resp, &ingredients)
	assert.Len(t, ingredients, 2)
	assert.Equal(t, "Tomato", ingredients[0].Name)
	assert.Equal(t, "Salt", ingredients[1].Name)
}

func TestRecipesAPI(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/recipe/recipes/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	token := registerAndLogin(t, app, "recipes@gmail.com")
	otherToken := registerAndLogin(t, app, "recipes2@gmail.com")

	tagID := createTag(t, app, token, "Vegan")
	ingredientID := createIngredient(t, app, token, "Tomato")

	resp = doJSON(t, app, http.MethodPost, "/api/v1/recipe/recipes/", token, map[string]interface{}{
		"title":        "Tomato Soup",
		"time_minutes": 25,
		"price":        5.50,
		"tags":         []string{tagID},
		"ingredients":  []string{ingredientID},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created handlers.RecipeDetail
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)

	// The other user creates a recipe of their own
	resp = doJSON(t, app, http.MethodPost, "/api/v1/recipe/recipes/", otherToken, map[string]interface{}{
		"title":        "Their Dish",
		"time_minutes": 10,
		"price":        3.00,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var theirs handlers.RecipeDetail
	decodeBody(t, resp, &theirs)

	// List shows only the caller's recipes, with relations as ID arrays
	resp = doJSON(t, app, http.MethodGet, "/api/v1/recipe/recipes/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []handlers.RecipeListItem
	decodeBody(t, resp, &list)
	assert.Len(t, list, 1)
	assert.Equal(t, "Tomato Soup", list[0].Title)
	assert.Equal(t, []string{tagID}, list[0].Tags)
	assert.Equal(t, []string{ingredientID}, list[0].Ingredients)

	// Detail expands tags and ingredients into full objects
	resp = doJSON(t, app, http.MethodGet, "/api/v1/recipe/recipes/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var detail handlers.RecipeDetail
	decodeBody(t, resp, &detail)
	assert.Len(t, detail.Tags, 1)
	assert.Equal(t, "Vegan", detail.Tags[0].Name)
	assert.Len(t, detail.Ingredients, 1)
	assert.Equal(t, "Tomato", detail.Ingredients[0].Name)

	// Another user's recipe is not visible, even by ID
	resp = doJSON(t, app, http.MethodGet, "/api/v1/recipe/recipes/"+theirs.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Referencing another user's tag fails the create
	foreignTagID := createTag(t, app, otherToken, "Foreign")
	resp = doJSON(t, app, http.MethodPost, "/api/v1/recipe/recipes/", token, map[string]interface{}{
		"title":        "Sneaky",
		"time_minutes": 1,
		"price":        1.00,
		"tags":         []string{foreignTagID},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRecipeFullUpdateClearsTags(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "put@gmail.com")

	tagID := createTag(t, app, token, "Vegan")
	resp := doJSON(t, app, http.MethodPost, "/api/v1/recipe/recipes/", token, map[string]interface{}{
		"title":        "Soup",
		"time_minutes": 25,
		"price":        5.00,
		"tags":         []string{tagID},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created handlers.RecipeDetail
	decodeBody(t, resp, &created)
	assert.Len(t, created.Tags, 1)

	// PUT without a tags field clears the association set entirely
	resp = doJSON(t, app, http.MethodPut, "/api/v1/recipe/recipes/"+created.ID, token, map[string]interface{}{
		"title":        "Winter Soup",
		"time_minutes": 30,
		"price":        6.00,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated handlers.RecipeDetail
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Winter Soup", updated.Title)
	assert.Len(t, updated.Tags, 0)

	// Re-read to confirm the cleared set was persisted
	resp = doJSON(t, app, http.MethodGet, "/api/v1/recipe/recipes/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var detail handlers.RecipeDetail
	decodeBody(t, resp, &detail)
	assert.Len(t, detail.Tags, 0)
}

func TestRecipePartialUpdateReplacesTags(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "patch@gmail.com")

	oldTagID := createTag(t, app, token, "Vegan")
	newTagID := createTag(t, app, token, "Quick")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/recipe/recipes/", token, map[string]interface{}{
		"title":        "Soup",
		"time_minutes": 25,
		"price":        5.00,
		"tags":         []string{oldTagID},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created handlers.RecipeDetail
	decodeBody(t, resp, &created)

	// PATCH with a tags field replaces the set exactly, scalars untouched
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/recipe/recipes/"+created.ID, token, map[string]interface{}{
		"tags": []string{newTagID},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var patched handlers.RecipeDetail
	decodeBody(t, resp, &patched)
	assert.Equal(t, "Soup", patched.Title)
	assert.Equal(t, 25, patched.TimeMinutes)
	assert.Len(t, patched.Tags, 1)
	assert.Equal(t, newTagID, patched.Tags[0].ID)
}

func TestRecipeDelete(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "delete@gmail.com")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/recipe/recipes/", token, map[string]interface{}{
		"title":        "Gone Soon",
		"time_minutes": 5,
		"price":        1.00,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created handlers.RecipeDetail
	decodeBody(t, resp, &created)

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/recipe/recipes/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/recipe/recipes/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
