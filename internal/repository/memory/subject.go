package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/repository"
)

type subjectRecord struct {
	subject domain.TicketSubject
}

type subjectRepository struct {
	store   *Store
	mu      sync.RWMutex
	records map[string]*subjectRecord
}

func (r *subjectRepository) GetOrCreate(ctx context.Context, agencyID, text string) (*domain.TicketSubject, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.subject.AgencyID == agencyID && record.subject.Subject == text {
			copied := record.subject
			return &copied, false, nil
		}
	}
	subject := domain.TicketSubject{
		ID:        uuid.NewString(),
		AgencyID:  agencyID,
		Subject:   text,
		CreatedAt: time.Now(),
	}
	r.records[subject.ID] = &subjectRecord{subject: subject}
	return &subject, true, nil
}

func (r *subjectRepository) GetByID(ctx context.Context, agencyID, id string) (*domain.TicketSubject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok || record.subject.AgencyID != agencyID {
		return nil, repository.ErrNotFound
	}
	copied := record.subject
	return &copied, nil
}

func (r *subjectRepository) ListWithCounts(ctx context.Context, agencyID string) ([]domain.SubjectWithCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.SubjectWithCount
	for _, record := range r.records {
		if record.subject.AgencyID != agencyID {
			continue
		}
		count, err := r.store.tickets.CountBySubject(ctx, agencyID, record.subject.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.SubjectWithCount{TicketSubject: record.subject, TicketCount: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Subject) < strings.ToLower(result[j].Subject)
	})
	return result, nil
}

func (r *subjectRepository) Update(ctx context.Context, subject *domain.TicketSubject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[subject.ID]
	if !ok || record.subject.AgencyID != subject.AgencyID {
		return repository.ErrNotFound
	}
	stored := record.subject
	stored.Subject = subject.Subject
	r.records[subject.ID] = &subjectRecord{subject: stored}
	return nil
}

func (r *subjectRepository) Delete(ctx context.Context, agencyID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.subject.AgencyID != agencyID {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}
