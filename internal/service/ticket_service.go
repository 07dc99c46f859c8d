package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travault/crm-service/internal/audit"
	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/events"
	"github.com/travault/crm-service/internal/repository"
	"github.com/travault/crm-service/pkg/util"
)

// TicketService coordinates the ticket lifecycle: creation, inline and
// full-form edits with audit logging, admin-gated reopen, and deletion
// with explicit action cascade.
type TicketService struct {
	store      repository.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for TicketService.
type TicketDependencies struct {
	Store      repository.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// TicketCreateInput describes ticket creation payload. Subject carries
// the raw subject text; the matching TicketSubject row is resolved or
// created during the call.
type TicketCreateInput struct {
	CompanyID    string
	ContactID    *string
	OwnerID      *string
	AssignedToID *string
	Priority     domain.TicketPriority
	CategoryType domain.TicketCategoryType
	Category     string
	Subject      string
	Description  string
}

// TicketEditInput describes the full-form edit payload. Every field is
// applied; the caller pre-fills unchanged fields from the current
// ticket.
type TicketEditInput struct {
	CompanyID    string
	ContactID    *string
	OwnerID      string
	AssignedToID *string
	Priority     domain.TicketPriority
	CategoryType domain.TicketCategoryType
	Category     string
	Subject      string
	Description  string
	Status       domain.TicketStatus
}

// InlineUpdateResult is the outcome of a single-field update. Reload
// signals that the client should refresh the ticket view because a
// system action was recorded.
type InlineUpdateResult struct {
	Success bool
	Message string
	Reload  bool
}

// inlineUpdatableFields is the closed allow-list for single-field
// updates. Requests naming any other field are rejected before any
// state is touched.
var inlineUpdatableFields = map[string]bool{
	"owner":       true,
	"assigned_to": true,
	"priority":    true,
	"status":      true,
}

// CreateTicket validates input, resolves the subject row, and persists
// a new open ticket. Creation writes no action log entry; the audit
// trail starts with the first edit.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.CustomUser, input TicketCreateInput) (*domain.Ticket, error) {
	if err := validateClassification(input.Priority, input.CategoryType, input.Category); err != nil {
		return nil, err
	}
	if input.Subject == "" {
		return nil, util.NewValidationError("subject is required", nil)
	}
	if input.Description == "" {
		return nil, util.NewValidationError("description is required", nil)
	}

	if _, err := s.store.Companies().GetByID(ctx, actor.AgencyID, input.CompanyID); err != nil {
		return nil, mapLookupErr(err, "company")
	}
	if input.ContactID != nil {
		if _, err := s.store.Contacts().GetByID(ctx, actor.AgencyID, *input.ContactID); err != nil {
			return nil, mapLookupErr(err, "contact")
		}
	}

	ownerID := actor.ID
	if input.OwnerID != nil {
		owner, err := s.store.Users().GetByID(ctx, actor.AgencyID, *input.OwnerID)
		if err != nil {
			return nil, mapLookupErr(err, "owner")
		}
		ownerID = owner.ID
	}
	if input.AssignedToID != nil {
		if _, err := s.store.Users().GetByID(ctx, actor.AgencyID, *input.AssignedToID); err != nil {
			return nil, mapLookupErr(err, "assigned user")
		}
	}

	subject, _, err := s.store.Subjects().GetOrCreate(ctx, actor.AgencyID, input.Subject)
	if err != nil {
		return nil, util.MapError(err)
	}

	ticket := &domain.Ticket{
		ID:           uuid.NewString(),
		AgencyID:     actor.AgencyID,
		CompanyID:    input.CompanyID,
		ContactID:    input.ContactID,
		OwnerID:      ownerID,
		AssignedToID: input.AssignedToID,
		UpdatedByID:  &actor.ID,
		Priority:     input.Priority,
		CategoryType: input.CategoryType,
		Category:     input.Category,
		SubjectID:    subject.ID,
		Description:  input.Description,
		Status:       domain.TicketStatusOpen,
	}
	if err := s.store.Tickets().Create(ctx, ticket); err != nil {
		return nil, util.MapError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketCreated,
		TicketID:  ticket.ID,
		AgencyID:  ticket.AgencyID,
		Actor:     &actor.ID,
		Timestamp: time.Now(),
		Payload: events.TicketCreatedPayload{
			Priority:     string(ticket.Priority),
			CategoryType: string(ticket.CategoryType),
			Category:     ticket.Category,
			Subject:      subject.Subject,
		},
	})
	return ticket, nil
}

// GetTicket loads a ticket in the actor's agency.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.CustomUser, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.store.Tickets().GetByID(ctx, actor.AgencyID, ticketID)
	if err != nil {
		return nil, mapLookupErr(err, "ticket")
	}
	return ticket, nil
}

// ListTickets returns tickets in the actor's agency matching the
// filter.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.CustomUser, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.store.Tickets().List(ctx, actor.AgencyID, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return tickets, nil
}

// ListClosedTickets returns the closed-ticket archive. Admin only.
func (s *TicketService) ListClosedTickets(ctx context.Context, actor *domain.CustomUser, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if !actor.IsAdmin() {
		return nil, util.NewPermissionDenied("only admin users can view closed tickets")
	}
	filter.Statuses = []domain.TicketStatus{domain.TicketStatusClosed}
	tickets, err := s.store.Tickets().List(ctx, actor.AgencyID, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return tickets, nil
}

// UpdateTicketField applies a single-field update from the ticket
// detail view. Only owner, assigned_to, priority, and status may be
// targeted; any change is recorded as a system-generated action.
func (s *TicketService) UpdateTicketField(ctx context.Context, actor *domain.CustomUser, ticketID, field, value string) (*InlineUpdateResult, error) {
	if !inlineUpdatableFields[field] {
		return nil, util.NewInvalidField(field)
	}

	ticket, err := s.store.Tickets().GetByID(ctx, actor.AgencyID, ticketID)
	if err != nil {
		return nil, mapLookupErr(err, "ticket")
	}
	updated := ticket.Clone()

	var message string
	switch field {
	case "owner":
		owner, err := s.store.Users().GetByID(ctx, actor.AgencyID, value)
		if err != nil {
			return nil, mapLookupErr(err, "owner")
		}
		updated.OwnerID = owner.ID
		message = fmt.Sprintf("Ticket ownership transferred to %s", owner.FullName())
	case "assigned_to":
		if value == "" {
			updated.AssignedToID = nil
			message = "Ticket unassigned"
		} else {
			assignee, err := s.store.Users().GetByID(ctx, actor.AgencyID, value)
			if err != nil {
				return nil, mapLookupErr(err, "assigned user")
			}
			updated.AssignedToID = &assignee.ID
			message = fmt.Sprintf("Ticket assigned to %s", assignee.FullName())
		}
	case "priority":
		if !domain.Contains(domain.PriorityChoices, value) {
			return nil, util.NewValidationError("invalid priority", map[string]any{"value": value})
		}
		updated.Priority = domain.TicketPriority(value)
		message = fmt.Sprintf("Priority updated to '%s'", domain.LabelFor(domain.PriorityChoices, value))
	case "status":
		if !domain.Contains(domain.StatusChoices, value) {
			return nil, util.NewValidationError("invalid status", map[string]any{"value": value})
		}
		updated.Status = domain.TicketStatus(value)
		message = fmt.Sprintf("Status updated to '%s'", domain.LabelFor(domain.StatusChoices, value))
	}

	changes, err := s.saveWithAudit(ctx, actor, updated, false)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return &InlineUpdateResult{Success: true, Message: "No changes made", Reload: false}, nil
	}

	s.publishUpdated(ctx, actor, updated, audit.Summary(changes))
	return &InlineUpdateResult{Success: true, Message: message, Reload: true}, nil
}

// EditTicket applies a full-form edit. All changed fields are captured
// in a single multi-line system action.
func (s *TicketService) EditTicket(ctx context.Context, actor *domain.CustomUser, ticketID string, input TicketEditInput) (*domain.Ticket, error) {
	if err := validateClassification(input.Priority, input.CategoryType, input.Category); err != nil {
		return nil, err
	}
	if !domain.Contains(domain.StatusChoices, string(input.Status)) {
		return nil, util.NewValidationError("invalid status", map[string]any{"value": string(input.Status)})
	}
	if input.Subject == "" {
		return nil, util.NewValidationError("subject is required", nil)
	}
	if input.Description == "" {
		return nil, util.NewValidationError("description is required", nil)
	}

	ticket, err := s.store.Tickets().GetByID(ctx, actor.AgencyID, ticketID)
	if err != nil {
		return nil, mapLookupErr(err, "ticket")
	}
	// Reject up front so a denied edit cannot leave a subject row
	// behind; the save path re-checks against the current record.
	if ticket.Closed() && !actor.IsAdmin() {
		return nil, util.NewPermissionDenied("closed tickets can only be modified by admin users")
	}

	if _, err := s.store.Companies().GetByID(ctx, actor.AgencyID, input.CompanyID); err != nil {
		return nil, mapLookupErr(err, "company")
	}
	if input.ContactID != nil {
		if _, err := s.store.Contacts().GetByID(ctx, actor.AgencyID, *input.ContactID); err != nil {
			return nil, mapLookupErr(err, "contact")
		}
	}
	if _, err := s.store.Users().GetByID(ctx, actor.AgencyID, input.OwnerID); err != nil {
		return nil, mapLookupErr(err, "owner")
	}
	if input.AssignedToID != nil {
		if _, err := s.store.Users().GetByID(ctx, actor.AgencyID, *input.AssignedToID); err != nil {
			return nil, mapLookupErr(err, "assigned user")
		}
	}
	subject, _, err := s.store.Subjects().GetOrCreate(ctx, actor.AgencyID, input.Subject)
	if err != nil {
		return nil, util.MapError(err)
	}

	updated := ticket.Clone()
	updated.CompanyID = input.CompanyID
	updated.ContactID = input.ContactID
	updated.OwnerID = input.OwnerID
	updated.AssignedToID = input.AssignedToID
	updated.Priority = input.Priority
	updated.CategoryType = input.CategoryType
	updated.Category = input.Category
	updated.SubjectID = subject.ID
	updated.Description = input.Description
	updated.Status = input.Status

	changes, err := s.saveWithAudit(ctx, actor, updated, false)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		s.publishUpdated(ctx, actor, updated, audit.Summary(changes))
	}
	return updated, nil
}

// ReopenTicketAsAdmin moves a closed ticket back to open. This is the
// only path that crosses the closed -> open boundary; the regular save
// path rejects it for every role.
func (s *TicketService) ReopenTicketAsAdmin(ctx context.Context, actor *domain.CustomUser, ticketID string) (*domain.Ticket, error) {
	if !actor.IsAdmin() {
		return nil, util.NewPermissionDenied("only admin users can reopen closed tickets")
	}
	ticket, err := s.store.Tickets().GetByID(ctx, actor.AgencyID, ticketID)
	if err != nil {
		return nil, mapLookupErr(err, "ticket")
	}
	if !ticket.Closed() {
		return nil, util.NewValidationError("ticket is not closed", nil)
	}

	updated := ticket.Clone()
	updated.Status = domain.TicketStatusOpen

	changes, err := s.saveWithAudit(ctx, actor, updated, true)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		s.publishUpdated(ctx, actor, updated, audit.Summary(changes))
	}
	return updated, nil
}

// DeleteTicket removes a ticket and its action log. The caller must
// echo the ticket id as confirmation; a mismatch leaves everything in
// place. Admin only.
func (s *TicketService) DeleteTicket(ctx context.Context, actor *domain.CustomUser, ticketID, confirmID string) error {
	if !actor.IsAdmin() {
		return util.NewPermissionDenied("only admin users can delete tickets")
	}
	ticket, err := s.store.Tickets().GetByID(ctx, actor.AgencyID, ticketID)
	if err != nil {
		return mapLookupErr(err, "ticket")
	}
	if confirmID != ticket.ID {
		return util.NewValidationError("confirmation id does not match", map[string]any{"expected": ticket.ID})
	}

	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := tx.Actions().DeleteByTicket(ctx, ticket.ID); err != nil {
			return err
		}
		return tx.Tickets().Delete(ctx, actor.AgencyID, ticket.ID)
	})
	if err != nil {
		return util.MapError(err)
	}
	return nil
}

// saveWithAudit persists the updated ticket and records any field
// changes as one system-generated action. Everything happens in a
// single transaction: the current record is re-read inside it, so the
// change lines always diff against the exact record being superseded
// even under concurrent edits. Closed tickets accept changes from
// admins only, and the closed -> open transition is rejected unless
// allowReopen is set.
func (s *TicketService) saveWithAudit(ctx context.Context, actor *domain.CustomUser, updated *domain.Ticket, allowReopen bool) ([]string, error) {
	var changes []string
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		current, err := tx.Tickets().GetByID(ctx, updated.AgencyID, updated.ID)
		if err != nil {
			return mapLookupErr(err, "ticket")
		}

		if current.Closed() {
			if !actor.IsAdmin() {
				return util.NewPermissionDenied("closed tickets can only be modified by admin users")
			}
			if !updated.Closed() && !allowReopen {
				return util.NewValidationError("closed tickets cannot be reopened through the edit path", nil)
			}
		}

		updated.UpdatedByID = &actor.ID

		oldRefs, err := resolveRefs(ctx, tx, current)
		if err != nil {
			return err
		}
		newRefs, err := resolveRefs(ctx, tx, updated)
		if err != nil {
			return err
		}
		changes = audit.Changes(audit.NewSnapshot(current, oldRefs), audit.NewSnapshot(updated, newRefs))

		if err := tx.Tickets().Update(ctx, updated); err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Actions().Create(ctx, &domain.TicketAction{
			TicketID:          updated.ID,
			ActionType:        domain.ActionTypeUpdate,
			Details:           audit.Summary(changes),
			CreatedByID:       &actor.ID,
			IsSystemGenerated: true,
		})
	})
	if err != nil {
		return nil, util.MapError(err)
	}
	return changes, nil
}

// resolveRefs loads display names for the ticket's reference fields so
// the audit snapshot needs no further I/O.
func resolveRefs(ctx context.Context, st repository.Store, ticket *domain.Ticket) (audit.Refs, error) {
	var refs audit.Refs

	company, err := st.Companies().GetByID(ctx, ticket.AgencyID, ticket.CompanyID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return refs, util.MapError(err)
	}
	if company != nil {
		refs.Company = company.Name
	}

	if ticket.ContactID != nil {
		contact, err := st.Contacts().GetByID(ctx, ticket.AgencyID, *ticket.ContactID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return refs, util.MapError(err)
		}
		if contact != nil {
			refs.Contact = contact.FullName()
		}
	}

	agency, err := st.Agencies().GetByID(ctx, ticket.AgencyID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return refs, util.MapError(err)
	}
	if agency != nil {
		refs.Agency = agency.Name
	}

	owner, err := st.Users().GetByID(ctx, ticket.AgencyID, ticket.OwnerID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return refs, util.MapError(err)
	}
	if owner != nil {
		refs.Owner = owner.FullName()
	}

	if ticket.AssignedToID != nil {
		assignee, err := st.Users().GetByID(ctx, ticket.AgencyID, *ticket.AssignedToID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return refs, util.MapError(err)
		}
		if assignee != nil {
			refs.AssignedTo = assignee.FullName()
		}
	}

	subject, err := st.Subjects().GetByID(ctx, ticket.AgencyID, ticket.SubjectID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return refs, util.MapError(err)
	}
	if subject != nil {
		refs.Subject = subject.Subject
	}

	return refs, nil
}

func (s *TicketService) publishUpdated(ctx context.Context, actor *domain.CustomUser, ticket *domain.Ticket, summary string) {
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketUpdated,
		TicketID:  ticket.ID,
		AgencyID:  ticket.AgencyID,
		Actor:     &actor.ID,
		Timestamp: time.Now(),
		Payload:   events.TicketUpdatedPayload{UpdateMessage: summary},
	})
}

// publish hands the event to the dispatcher after the surrounding
// transaction has committed. Publish failures are logged, never
// surfaced; notifications are fire-and-forget.
func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

func validateClassification(priority domain.TicketPriority, categoryType domain.TicketCategoryType, category string) error {
	if !domain.Contains(domain.PriorityChoices, string(priority)) {
		return util.NewValidationError("invalid priority", map[string]any{"value": string(priority)})
	}
	if !domain.Contains(domain.CategoryTypeChoices, string(categoryType)) {
		return util.NewValidationError("invalid category type", map[string]any{"value": string(categoryType)})
	}
	if !domain.ValidateCategory(categoryType, category) {
		return util.NewValidationError("invalid category for category type", map[string]any{
			"category_type": string(categoryType),
			"category":      category,
		})
	}
	return nil
}

func mapLookupErr(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return util.NewNotFound(resource, nil)
	}
	return util.MapError(err)
}
