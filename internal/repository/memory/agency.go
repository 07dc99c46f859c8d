package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/repository"
)

type agencyRecord struct {
	agency domain.Agency
}

type agencyRepository struct {
	mu      sync.RWMutex
	records map[string]*agencyRecord
}

func (r *agencyRepository) Create(ctx context.Context, agency *domain.Agency) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if agency.ID == "" {
		agency.ID = uuid.NewString()
	}
	now := time.Now()
	agency.CreatedAt = now
	agency.UpdatedAt = now
	r.records[agency.ID] = &agencyRecord{agency: *agency}
	return nil
}

func (r *agencyRepository) GetByID(ctx context.Context, id string) (*domain.Agency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := record.agency
	return &copied, nil
}
