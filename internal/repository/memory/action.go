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

type actionRecord struct {
	action domain.TicketAction
}

type actionRepository struct {
	store   *Store
	mu      sync.RWMutex
	records map[string]*actionRecord
	seq     int
}

func (r *actionRepository) Create(ctx context.Context, action *domain.TicketAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	now := time.Now()
	if action.CreatedAt.IsZero() {
		// Monotonic offset keeps ordering deterministic when several
		// actions are created within one clock tick.
		r.seq++
		action.CreatedAt = now.Add(time.Duration(r.seq) * time.Microsecond)
	}
	action.UpdatedAt = now
	stored := *action
	r.records[action.ID] = &actionRecord{action: stored}
	return nil
}

func (r *actionRepository) Update(ctx context.Context, action *domain.TicketAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[action.ID]
	if !ok {
		return repository.ErrNotFound
	}
	// created_at and created_by_id never change on edit.
	stored := record.action
	stored.ActionType = action.ActionType
	stored.Details = action.Details
	stored.UpdatedByID = action.UpdatedByID
	stored.UpdatedAt = time.Now()
	r.records[action.ID] = &actionRecord{action: stored}
	*action = stored
	return nil
}

func (r *actionRepository) GetByID(ctx context.Context, agencyID, id string) (*domain.TicketAction, error) {
	r.mu.RLock()
	record, ok := r.records[id]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Tenant scoping goes through the owning ticket.
	if _, err := r.store.tickets.GetByID(ctx, agencyID, record.action.TicketID); err != nil {
		return nil, repository.ErrNotFound
	}
	copied := record.action
	return &copied, nil
}

func (r *actionRepository) ListByTicket(ctx context.Context, ticketID string, order domain.SortOrder) ([]domain.TicketAction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.TicketAction
	for _, record := range r.records {
		if record.action.TicketID == ticketID {
			result = append(result, record.action)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if order == domain.SortAscending {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *actionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *actionRepository) DeleteByTicket(ctx context.Context, ticketID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, record := range r.records {
		if record.action.TicketID == ticketID {
			delete(r.records, id)
		}
	}
	return nil
}
