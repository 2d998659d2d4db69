package repositories

import (
	"fmt"
	"sort"
	"sync"

	"recipebox/internal/models"

	"github.com/google/uuid"
)

// MockTagRepository is an in-memory implementation of TagRepository.
type MockTagRepository struct {
	tags map[string]models.Tag
	mu   sync.RWMutex
}

// NewMockTagRepository creates a new instance of MockTagRepository.
func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{
		tags: make(map[string]models.Tag),
	}
}

// Create adds a new tag.
func (r *MockTagRepository) Create(tag *models.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	r.tags[tag.ID] = *tag
	return nil
}

// ListByUser returns all tags owned by the given user, name descending.
func (r *MockTagRepository) ListByUser(userID string) ([]models.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tagList := make([]models.Tag, 0)
	for _, t := range r.tags {
		if t.UserID == userID {
			tagList = append(tagList, t)
		}
	}
	sort.Slice(tagList, func(i, j int) bool { return tagList[i].Name > tagList[j].Name })
	return tagList, nil
}

// GetByIDsForUser resolves tag IDs within the given user's scope.
func (r *MockTagRepository) GetByIDsForUser(ids []string, userID string) ([]models.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tagList := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		t, ok := r.tags[id]
		if !ok || t.UserID != userID {
			return nil, fmt.Errorf("one or more tags not found")
		}
		tagList = append(tagList, t)
	}
	return tagList, nil
}
