package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/repository"
	"github.com/travault/crm-service/pkg/util"
)

// SubjectService manages the deduplicated subject catalog. Subjects
// are shared across a ticket's agency and protected from deletion
// while tickets still reference them.
type SubjectService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewSubjectService constructs the service.
func NewSubjectService(store repository.Store, logger *zap.Logger) *SubjectService {
	return &SubjectService{store: store, logger: logger}
}

// GetOrCreate resolves the subject row for the given text, creating it
// when absent. Matching is case-sensitive and exact.
func (s *SubjectService) GetOrCreate(ctx context.Context, actor *domain.CustomUser, text string) (*domain.TicketSubject, bool, error) {
	if text == "" {
		return nil, false, util.NewValidationError("subject is required", nil)
	}
	subject, created, err := s.store.Subjects().GetOrCreate(ctx, actor.AgencyID, text)
	if err != nil {
		return nil, false, util.MapError(err)
	}
	return subject, created, nil
}

// List returns the agency's subjects with per-subject ticket counts,
// ordered alphabetically.
func (s *SubjectService) List(ctx context.Context, actor *domain.CustomUser) ([]domain.SubjectWithCount, error) {
	subjects, err := s.store.Subjects().ListWithCounts(ctx, actor.AgencyID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return subjects, nil
}

// Rename changes a subject's text. Every ticket referencing the
// subject sees the new text immediately.
func (s *SubjectService) Rename(ctx context.Context, actor *domain.CustomUser, subjectID, text string) (*domain.TicketSubject, error) {
	if text == "" {
		return nil, util.NewValidationError("subject is required", nil)
	}
	subject, err := s.store.Subjects().GetByID(ctx, actor.AgencyID, subjectID)
	if err != nil {
		return nil, mapLookupErr(err, "subject")
	}
	subject.Subject = text
	if err := s.store.Subjects().Update(ctx, subject); err != nil {
		return nil, util.MapError(err)
	}
	return subject, nil
}

// Delete removes a subject. Subjects still referenced by tickets are
// protected.
func (s *SubjectService) Delete(ctx context.Context, actor *domain.CustomUser, subjectID string) error {
	subject, err := s.store.Subjects().GetByID(ctx, actor.AgencyID, subjectID)
	if err != nil {
		return mapLookupErr(err, "subject")
	}
	count, err := s.store.Tickets().CountBySubject(ctx, actor.AgencyID, subject.ID)
	if err != nil {
		return util.MapError(err)
	}
	if count > 0 {
		return util.NewProtected("subject is referenced by existing tickets", map[string]any{"ticket_count": count})
	}
	if err := s.store.Subjects().Delete(ctx, actor.AgencyID, subject.ID); err != nil {
		return util.MapError(err)
	}
	return nil
}
