package service_test

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/m-mizutani/gt"

	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/events"
	"github.com/travault/crm-service/internal/repository"
	"github.com/travault/crm-service/internal/repository/memory"
	"github.com/travault/crm-service/internal/service"
	"github.com/travault/crm-service/pkg/util"
)

// env is a fully wired service stack on the in-memory store, seeded
// with two agencies so tenant isolation can be exercised.
type env struct {
	store    *memory.Store
	tickets  *service.TicketService
	actions  *service.ActionService
	subjects *service.SubjectService

	admin      *domain.CustomUser
	agent      *domain.CustomUser
	otherAdmin *domain.CustomUser
	company    *domain.Company
	contact    *domain.Contact
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()

	ticketSvc := service.NewTicketService(service.TicketDependencies{
		Store:      store,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	actionSvc := service.NewActionService(service.ActionDependencies{
		Store:      store,
		Tickets:    ticketSvc,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	subjectSvc := service.NewSubjectService(store, logger)

	agency := &domain.Agency{Name: "Travault"}
	gt.NoError(t, store.Agencies().Create(ctx, agency)).Required()
	otherAgency := &domain.Agency{Name: "Rival"}
	gt.NoError(t, store.Agencies().Create(ctx, otherAgency)).Required()

	admin := &domain.CustomUser{
		AgencyID:  agency.ID,
		Username:  "admin",
		Email:     "admin@example.com",
		FirstName: "Ada",
		LastName:  "Admin",
		Role:      domain.RoleAdmin,
		Active:    true,
	}
	gt.NoError(t, store.Users().Create(ctx, admin)).Required()

	agent := &domain.CustomUser{
		AgencyID:  agency.ID,
		Username:  "agent",
		Email:     "agent@example.com",
		FirstName: "Alex",
		LastName:  "Agent",
		Role:      domain.RoleAgent,
		Active:    true,
	}
	gt.NoError(t, store.Users().Create(ctx, agent)).Required()

	otherAdmin := &domain.CustomUser{
		AgencyID: otherAgency.ID,
		Username: "rival-admin",
		Email:    "admin@rival.example.com",
		Role:     domain.RoleAdmin,
		Active:   true,
	}
	gt.NoError(t, store.Users().Create(ctx, otherAdmin)).Required()

	company := &domain.Company{AgencyID: agency.ID, Name: "Acme Travel"}
	gt.NoError(t, store.Companies().Create(ctx, company)).Required()

	contact := &domain.Contact{
		AgencyID:  agency.ID,
		CompanyID: company.ID,
		FirstName: "Carl",
		LastName:  "Contact",
	}
	gt.NoError(t, store.Contacts().Create(ctx, contact)).Required()

	return &env{
		store:      store,
		tickets:    ticketSvc,
		actions:    actionSvc,
		subjects:   subjectSvc,
		admin:      admin,
		agent:      agent,
		otherAdmin: otherAdmin,
		company:    company,
		contact:    contact,
	}
}

func (e *env) createTicket(t *testing.T, actor *domain.CustomUser) *domain.Ticket {
	t.Helper()
	ticket, err := e.tickets.CreateTicket(context.Background(), actor, service.TicketCreateInput{
		CompanyID:    e.company.ID,
		Priority:     domain.TicketPriorityLow,
		CategoryType: domain.CategoryTypeClient,
		Category:     "complaint",
		Subject:      "Booking problem",
		Description:  "The booking does not confirm",
	})
	gt.NoError(t, err).Required()
	return ticket
}

// closeTicket moves the ticket to closed through the regular inline
// update path, adding one system action.
func (e *env) closeTicket(t *testing.T, ticket *domain.Ticket) {
	t.Helper()
	_, err := e.tickets.UpdateTicketField(context.Background(), e.admin, ticket.ID, "status", "closed")
	gt.NoError(t, err).Required()
}

func (e *env) listActions(t *testing.T, actor *domain.CustomUser, ticketID string) []domain.TicketAction {
	t.Helper()
	actions, err := e.actions.ListActions(context.Background(), actor, ticketID, domain.SortAscending)
	gt.NoError(t, err).Required()
	return actions
}

func repositoryFilter() repository.TicketFilter {
	return repository.TicketFilter{}
}

func errCode(err error) string {
	if err == nil {
		return ""
	}
	return util.ToDomainError(err).Code
}
