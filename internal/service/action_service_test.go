package service_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/service"
)

func TestAddActionAutoClaimsUnassignedTicket(t *testing.T) {
	e := newEnv(t)
	ticket := e.createTicket(t, e.admin)

	action, err := e.actions.AddAction(context.Background(), e.agent, ticket.ID, service.ActionInput{
		ActionType: domain.ActionTypeActionTaken,
		Details:    "Called the supplier",
	})
	gt.NoError(t, err).Required()
	gt.Bool(t, action.IsSystemGenerated).False()
	gt.Value(t, *action.CreatedByID).Equal(e.agent.ID)

	current, err := e.tickets.GetTicket(context.Background(), e.agent, ticket.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, *current.AssignedToID).Equal(e.agent.ID)

	// The auto-claim shows up in the audit trail alongside the manual
	// entry.
	actions := e.listActions(t, e.agent, ticket.ID)
	gt.Array(t, actions).Length(2)
	gt.Value(t, actions[0].Details).Equal("Called the supplier")
	gt.Bool(t, actions[1].IsSystemGenerated).True()
	gt.Value(t, actions[1].Details).Equal("Assigned to changed from 'None' to 'Alex Agent'")
}

func TestAddActionKeepsExistingAssignee(t *testing.T) {
	e := newEnv(t)
	ticket := e.createTicket(t, e.agent)
	_, err := e.tickets.UpdateTicketField(context.Background(), e.agent, ticket.ID, "assigned_to", e.admin.ID)
	gt.NoError(t, err).Required()

	_, err = e.actions.AddAction(context.Background(), e.agent, ticket.ID, service.ActionInput{
		ActionType: domain.ActionTypeUpdate,
		Details:    "Chased the client",
	})
	gt.NoError(t, err).Required()

	current, err := e.tickets.GetTicket(context.Background(), e.agent, ticket.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, *current.AssignedToID).Equal(e.admin.ID)
}

func TestAddActionRequiresBothFields(t *testing.T) {
	e := newEnv(t)
	ticket := e.createTicket(t, e.agent)

	_, err := e.actions.AddAction(context.Background(), e.agent, ticket.ID, service.ActionInput{
		ActionType: domain.ActionTypeUpdate,
	})
	gt.Value(t, errCode(err)).Equal("validation_error")

	_, err = e.actions.AddAction(context.Background(), e.agent, ticket.ID, service.ActionInput{
		Details: "no type given",
	})
	gt.Value(t, errCode(err)).Equal("validation_error")

	gt.Array(t, e.listActions(t, e.agent, ticket.ID)).Length(0)
}

func TestAddActionOnClosedTicketAdminOnly(t *testing.T) {
	e := newEnv(t)
	ticket := e.createTicket(t, e.agent)
	e.closeTicket(t, ticket)

	_, err := e.actions.AddAction(context.Background(), e.agent, ticket.ID, service.ActionInput{
		ActionType: domain.ActionTypeOutcome,
		Details:    "should be rejected",
	})
	gt.Value(t, errCode(err)).Equal("permission_denied")

	_, err = e.actions.AddAction(context.Background(), e.admin, ticket.ID, service.ActionInput{
		ActionType: domain.ActionTypeOutcome,
		Details:    "post-closure note",
	})
	gt.NoError(t, err).Required()
}

func TestEditActionPreservesCreatedAt(t *testing.T) {
	e := newEnv(t)
	ticket := e.createTicket(t, e.agent)

	action, err := e.actions.AddAction(context.Background(), e.agent, ticket.ID, service.ActionInput{
		ActionType: domain.ActionTypeResponse,
		Details:    "initial wording",
	})
	gt.NoError(t, err).Required()

	edited, err := e.actions.EditAction(context.Background(), e.admin, action.ID, service.ActionInput{
		ActionType: domain.ActionTypeOutcome,
		Details:    "corrected wording",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, edited.Details).Equal("corrected wording")
	gt.Value(t, edited.ActionType).Equal(domain.ActionTypeOutcome)
	gt.Bool(t, edited.CreatedAt.Equal(action.CreatedAt)).True()
	gt.Value(t, *edited.CreatedByID).Equal(e.agent.ID)
	gt.Value(t, *edited.UpdatedByID).Equal(e.admin.ID)
}

func TestDeleteActionRequiresMatchingConfirmation(t *testing.T) {
	e := newEnv(t)
	ticket := e.createTicket(t, e.agent)

	action, err := e.actions.AddAction(context.Background(), e.agent, ticket.ID, service.ActionInput{
		ActionType: domain.ActionTypeUpdate,
		Details:    "to be deleted",
	})
	gt.NoError(t, err).Required()

	err = e.actions.DeleteAction(context.Background(), e.agent, action.ID, action.ID)
	gt.Value(t, errCode(err)).Equal("permission_denied")

	err = e.actions.DeleteAction(context.Background(), e.admin, action.ID, "wrong-id")
	gt.Value(t, errCode(err)).Equal("validation_error")

	// Wrong confirmation must not delete anything.
	remaining := e.listActions(t, e.admin, ticket.ID)
	found := false
	for _, a := range remaining {
		if a.ID == action.ID {
			found = true
		}
	}
	gt.Bool(t, found).True()

	err = e.actions.DeleteAction(context.Background(), e.admin, action.ID, action.ID)
	gt.NoError(t, err).Required()
}

func TestListActionsDefaultsToNewestFirst(t *testing.T) {
	e := newEnv(t)
	ticket := e.createTicket(t, e.agent)
	// Assign up front so auto-claim does not add a system entry.
	_, err := e.tickets.UpdateTicketField(context.Background(), e.agent, ticket.ID, "assigned_to", e.agent.ID)
	gt.NoError(t, err).Required()

	first, err := e.actions.AddAction(context.Background(), e.agent, ticket.ID, service.ActionInput{
		ActionType: domain.ActionTypeActionTaken,
		Details:    "first entry",
	})
	gt.NoError(t, err).Required()
	second, err := e.actions.AddAction(context.Background(), e.agent, ticket.ID, service.ActionInput{
		ActionType: domain.ActionTypeUpdate,
		Details:    "second entry",
	})
	gt.NoError(t, err).Required()

	newest, err := e.actions.ListActions(context.Background(), e.agent, ticket.ID, "")
	gt.NoError(t, err).Required()
	gt.Value(t, newest[0].ID).Equal(second.ID)

	oldest, err := e.actions.ListActions(context.Background(), e.agent, ticket.ID, domain.SortAscending)
	gt.NoError(t, err).Required()
	gt.Value(t, oldest[0].ID).NotEqual(second.ID)
	gt.Value(t, oldest[len(oldest)-1].ID).Equal(second.ID)
	_ = first
}

func TestActionsInvisibleAcrossTenants(t *testing.T) {
	e := newEnv(t)
	ticket := e.createTicket(t, e.agent)

	action, err := e.actions.AddAction(context.Background(), e.agent, ticket.ID, service.ActionInput{
		ActionType: domain.ActionTypeUpdate,
		Details:    "private note",
	})
	gt.NoError(t, err).Required()

	_, err = e.actions.EditAction(context.Background(), e.otherAdmin, action.ID, service.ActionInput{
		ActionType: domain.ActionTypeUpdate,
		Details:    "tampered",
	})
	gt.Value(t, errCode(err)).Equal("not_found")

	err = e.actions.DeleteAction(context.Background(), e.otherAdmin, action.ID, action.ID)
	gt.Value(t, errCode(err)).Equal("not_found")
}
