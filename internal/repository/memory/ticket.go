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

type ticketRecord struct {
	ticket domain.Ticket
}

type ticketRepository struct {
	mu      sync.RWMutex
	records map[string]*ticketRecord
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.records[ticket.ID] = &ticketRecord{ticket: *ticket.Clone()}
	return nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[ticket.ID]
	if !ok || record.ticket.AgencyID != ticket.AgencyID {
		return repository.ErrNotFound
	}
	ticket.CreatedAt = record.ticket.CreatedAt
	ticket.UpdatedAt = time.Now()
	r.records[ticket.ID] = &ticketRecord{ticket: *ticket.Clone()}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, agencyID, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok || record.ticket.AgencyID != agencyID {
		return nil, repository.ErrNotFound
	}
	return record.ticket.Clone(), nil
}

func (r *ticketRepository) List(ctx context.Context, agencyID string, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Ticket
	for _, record := range r.records {
		t := record.ticket
		if t.AgencyID != agencyID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, t.Status) {
			continue
		}
		if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, t.Priority) {
			continue
		}
		if filter.OwnerID != nil && t.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.CompanyID != nil && t.CompanyID != *filter.CompanyID {
			continue
		}
		result = append(result, *t.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	result = paginate(result, filter.Limit, filter.Offset)
	return result, nil
}

func (r *ticketRepository) CountBySubject(ctx context.Context, agencyID, subjectID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, record := range r.records {
		if record.ticket.AgencyID == agencyID && record.ticket.SubjectID == subjectID {
			count++
		}
	}
	return count, nil
}

func (r *ticketRepository) Delete(ctx context.Context, agencyID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.ticket.AgencyID != agencyID {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func containsStatus(list []domain.TicketStatus, s domain.TicketStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(list []domain.TicketPriority, p domain.TicketPriority) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
