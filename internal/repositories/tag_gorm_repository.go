package repositories

import (
	"fmt"

	"recipebox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{
		db: db,
	}
}

// Create creates a new tag in the database.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	if err := r.db.Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// ListByUser retrieves all tags owned by the given user, name descending.
func (r *GORMTagRepository) ListByUser(userID string) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Where("user_id = ?", userID).Order("name DESC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags for user %s: %w", userID, err)
	}
	return tags, nil
}

// GetByIDsForUser resolves a set of tag IDs within the given user's scope.
// It returns an error when any requested ID is missing or owned by someone
// else, so callers cannot link foreign tags into their recipes.
func (r *GORMTagRepository) GetByIDsForUser(ids []string, userID string) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := r.db.Where("id IN ? AND user_id = ?", ids, userID).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve tags for user %s: %w", userID, err)
	}
	if len(tags) != len(ids) {
		return nil, fmt.Errorf("one or more tags not found")
	}
	return tags, nil
}
