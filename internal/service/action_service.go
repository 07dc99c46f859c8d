package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/events"
	"github.com/travault/crm-service/internal/repository"
	"github.com/travault/crm-service/pkg/util"
)

// ActionService manages the ticket action log: manual entries added by
// agents plus the system-generated entries written by ticket edits.
type ActionService struct {
	store      repository.Store
	tickets    *TicketService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ActionDependencies bundles collaborators for ActionService.
type ActionDependencies struct {
	Store      repository.Store
	Tickets    *TicketService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewActionService constructs the service.
func NewActionService(deps ActionDependencies) *ActionService {
	return &ActionService{
		store:      deps.Store,
		tickets:    deps.Tickets,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ActionInput describes a manual action entry.
type ActionInput struct {
	ActionType domain.TicketActionType
	Details    string
}

func validateActionInput(input ActionInput) error {
	missing := map[string]any{}
	if input.ActionType == "" {
		missing["action_type"] = "required"
	} else if !domain.Contains(domain.ActionTypeChoices, string(input.ActionType)) {
		return util.NewValidationError("invalid action type", map[string]any{"value": string(input.ActionType)})
	}
	if input.Details == "" {
		missing["details"] = "required"
	}
	if len(missing) > 0 {
		return util.NewValidationError("action type and details are required", missing)
	}
	return nil
}

// AddAction records a manual action on a ticket. Closed tickets accept
// new actions from admins only. If the ticket has no assignee, the
// acting user claims it, which itself shows up in the audit trail.
func (s *ActionService) AddAction(ctx context.Context, actor *domain.CustomUser, ticketID string, input ActionInput) (*domain.TicketAction, error) {
	if err := validateActionInput(input); err != nil {
		return nil, err
	}

	ticket, err := s.store.Tickets().GetByID(ctx, actor.AgencyID, ticketID)
	if err != nil {
		return nil, mapLookupErr(err, "ticket")
	}
	if ticket.Closed() && !actor.IsAdmin() {
		return nil, util.NewPermissionDenied("cannot add actions to a closed ticket")
	}

	action := &domain.TicketAction{
		TicketID:    ticket.ID,
		ActionType:  input.ActionType,
		Details:     input.Details,
		CreatedByID: &actor.ID,
	}
	if err := s.store.Actions().Create(ctx, action); err != nil {
		return nil, util.MapError(err)
	}

	if ticket.AssignedToID == nil {
		updated := ticket.Clone()
		updated.AssignedToID = &actor.ID
		if _, err := s.tickets.saveWithAudit(ctx, actor, updated, false); err != nil {
			// The manual action is already recorded; losing the
			// auto-claim must not fail the whole request.
			s.logger.Warn("auto-claim failed",
				zap.String("ticket_id", ticket.ID),
				zap.String("user_id", actor.ID),
				zap.Error(err))
		}
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketActionAdded,
		TicketID:  ticket.ID,
		AgencyID:  ticket.AgencyID,
		Actor:     &actor.ID,
		Timestamp: time.Now(),
		Payload: events.TicketActionAddedPayload{
			ActionID:   action.ID,
			ActionType: string(action.ActionType),
			Details:    action.Details,
			CreatedBy:  action.CreatedByID,
		},
	})
	return action, nil
}

// EditAction updates a manual action's type and details. The original
// author and timestamp are preserved; the editor is recorded
// separately.
func (s *ActionService) EditAction(ctx context.Context, actor *domain.CustomUser, actionID string, input ActionInput) (*domain.TicketAction, error) {
	if err := validateActionInput(input); err != nil {
		return nil, err
	}

	action, err := s.store.Actions().GetByID(ctx, actor.AgencyID, actionID)
	if err != nil {
		return nil, mapLookupErr(err, "action")
	}
	ticket, err := s.store.Tickets().GetByID(ctx, actor.AgencyID, action.TicketID)
	if err != nil {
		return nil, mapLookupErr(err, "ticket")
	}
	if ticket.Closed() && !actor.IsAdmin() {
		return nil, util.NewPermissionDenied("cannot edit actions on a closed ticket")
	}

	action.ActionType = input.ActionType
	action.Details = input.Details
	action.UpdatedByID = &actor.ID
	if err := s.store.Actions().Update(ctx, action); err != nil {
		return nil, util.MapError(err)
	}
	return action, nil
}

// DeleteAction removes an action entry. The caller must echo the
// action id as confirmation. Admin only.
func (s *ActionService) DeleteAction(ctx context.Context, actor *domain.CustomUser, actionID, confirmID string) error {
	if !actor.IsAdmin() {
		return util.NewPermissionDenied("only admin users can delete actions")
	}
	action, err := s.store.Actions().GetByID(ctx, actor.AgencyID, actionID)
	if err != nil {
		return mapLookupErr(err, "action")
	}
	if confirmID != action.ID {
		return util.NewValidationError("confirmation id does not match", map[string]any{"expected": action.ID})
	}
	if err := s.store.Actions().Delete(ctx, action.ID); err != nil {
		return util.MapError(err)
	}
	return nil
}

// ListActions returns a ticket's action log. Order defaults to newest
// first.
func (s *ActionService) ListActions(ctx context.Context, actor *domain.CustomUser, ticketID string, order domain.SortOrder) ([]domain.TicketAction, error) {
	ticket, err := s.store.Tickets().GetByID(ctx, actor.AgencyID, ticketID)
	if err != nil {
		return nil, mapLookupErr(err, "ticket")
	}
	if order != domain.SortAscending {
		order = domain.SortDescending
	}
	actions, err := s.store.Actions().ListByTicket(ctx, ticket.ID, order)
	if err != nil {
		return nil, util.MapError(err)
	}
	return actions, nil
}

func (s *ActionService) publish(ctx context.Context, event events.Event) {
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}
