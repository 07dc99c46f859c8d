package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/repository"
)

type companyRecord struct {
	company domain.Company
}

type companyRepository struct {
	mu      sync.RWMutex
	records map[string]*companyRecord
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now
	r.records[company.ID] = &companyRecord{company: *company}
	return nil
}

func (r *companyRepository) GetByID(ctx context.Context, agencyID, id string) (*domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok || record.company.AgencyID != agencyID {
		return nil, repository.ErrNotFound
	}
	copied := record.company
	return &copied, nil
}

type contactRecord struct {
	contact domain.Contact
}

type contactRepository struct {
	mu      sync.RWMutex
	records map[string]*contactRecord
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	r.records[contact.ID] = &contactRecord{contact: *contact}
	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, agencyID, id string) (*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok || record.contact.AgencyID != agencyID {
		return nil, repository.ErrNotFound
	}
	copied := record.contact
	return &copied, nil
}
