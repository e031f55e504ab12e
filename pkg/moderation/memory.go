package moderation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/HavenStudios/HavenBotGo/pkg/models"
)

// MemoryWarningStore keeps warnings in process memory. Used when no
// database is configured and by tests. Ids are never reused.
type MemoryWarningStore struct {
	mu       sync.Mutex
	nextID   int64
	warnings map[int64]*models.Warning
}

// NewMemoryWarningStore creates an empty in-memory store
func NewMemoryWarningStore() *MemoryWarningStore {
	return &MemoryWarningStore{warnings: make(map[int64]*models.Warning)}
}

// AddWarning records a new warning and returns it
func (s *MemoryWarningStore) AddWarning(ctx context.Context, userID, moderatorID, reason string) (*models.Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	warning := &models.Warning{
		ID:          s.nextID,
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      reason,
		CreatedAt:   time.Now().UTC(),
	}
	s.warnings[warning.ID] = warning
	return warning, nil
}

// FetchWarning returns the warning with the given id, or nil if none exists
func (s *MemoryWarningStore) FetchWarning(ctx context.Context, id int64) (*models.Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	warning, ok := s.warnings[id]
	if !ok {
		return nil, nil
	}
	copied := *warning
	return &copied, nil
}

// DeleteWarning removes the warning with the given id
func (s *MemoryWarningStore) DeleteWarning(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.warnings, id)
	return nil
}

// ListWarnings returns all warnings for the user, oldest first
func (s *MemoryWarningStore) ListWarnings(ctx context.Context, userID string) ([]*models.Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Warning
	for _, warning := range s.warnings {
		if warning.UserID == userID {
			copied := *warning
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
