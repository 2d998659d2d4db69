package repositories

import "recipebox/internal/models"

// TagRepository defines the interface for tag data access. Every method is
// scoped to an owning user: tags belonging to other users are invisible.
type TagRepository interface {
	Create(tag *models.Tag) error
	ListByUser(userID string) ([]models.Tag, error)
	GetByIDsForUser(ids []string, userID string) ([]models.Tag, error)
}
