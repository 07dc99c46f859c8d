package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/repository"
)

type userRecord struct {
	user domain.CustomUser
}

type userRepository struct {
	mu      sync.RWMutex
	records map[string]*userRecord
}

func (r *userRepository) Create(ctx context.Context, user *domain.CustomUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.records[user.ID] = &userRecord{user: *user}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, agencyID, id string) (*domain.CustomUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok || record.user.AgencyID != agencyID {
		return nil, repository.ErrNotFound
	}
	copied := record.user
	return &copied, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.CustomUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.user.Username == username {
			copied := record.user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) ListByAgency(ctx context.Context, agencyID string) ([]domain.CustomUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.CustomUser
	for _, record := range r.records {
		if record.user.AgencyID == agencyID {
			result = append(result, record.user)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Username < result[j].Username
	})
	return result, nil
}
