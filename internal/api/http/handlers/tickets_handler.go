package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/travault/crm-service/internal/api/dto"
	"github.com/travault/crm-service/internal/auth"
	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/repository"
	"github.com/travault/crm-service/internal/service"
	"github.com/travault/crm-service/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), actor, service.TicketCreateInput{
		CompanyID:    req.CompanyID,
		ContactID:    req.ContactID,
		OwnerID:      req.OwnerID,
		AssignedToID: req.AssignedToID,
		Priority:     req.Priority,
		CategoryType: req.CategoryType,
		Category:     req.Category,
		Subject:      req.Subject,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListTickets(c.UserContext(), actor, parseTicketFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// ListClosedTickets GET /tickets/closed. Admin only.
func (h *TicketsHandler) ListClosedTickets(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListClosedTickets(c.UserContext(), actor, parseTicketFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateTicketField PATCH /tickets/:id/field.
func (h *TicketsHandler) UpdateTicketField(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketFieldRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.service.UpdateTicketField(c.UserContext(), actor, c.Params("id"), req.Field, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(dto.UpdateTicketFieldResponse{
		Success: result.Success,
		Message: result.Message,
		Reload:  result.Reload,
	})
}

// EditTicket PUT /tickets/:id.
func (h *TicketsHandler) EditTicket(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.EditTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ticket, err := h.service.EditTicket(c.UserContext(), actor, c.Params("id"), service.TicketEditInput{
		CompanyID:    req.CompanyID,
		ContactID:    req.ContactID,
		OwnerID:      req.OwnerID,
		AssignedToID: req.AssignedToID,
		Priority:     req.Priority,
		CategoryType: req.CategoryType,
		Category:     req.Category,
		Subject:      req.Subject,
		Description:  req.Description,
		Status:       req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ReopenTicket POST /tickets/:id/reopen. Admin only.
func (h *TicketsHandler) ReopenTicket(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.ReopenTicketAsAdmin(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// DeleteTicket DELETE /tickets/:id. Admin only; the body must echo the
// ticket id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.DeleteTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.service.DeleteTicket(c.UserContext(), actor, c.Params("id"), req.ConfirmID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func requireActor(c *fiber.Ctx) (*domain.CustomUser, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, util.NewUnauthorized("authentication required")
	}
	return principal.User, nil
}

func parseTicketFilter(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}
	if status := c.Query("status"); status != "" {
		filter.Statuses = []domain.TicketStatus{domain.TicketStatus(status)}
	}
	if priority := c.Query("priority"); priority != "" {
		filter.Priorities = []domain.TicketPriority{domain.TicketPriority(priority)}
	}
	if owner := c.Query("owner_id"); owner != "" {
		filter.OwnerID = &owner
	}
	if company := c.Query("company_id"); company != "" {
		filter.CompanyID = &company
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}
	return filter
}

func ticketResponse(t *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:           t.ID,
		CompanyID:    t.CompanyID,
		ContactID:    t.ContactID,
		OwnerID:      t.OwnerID,
		AssignedToID: t.AssignedToID,
		Priority:     t.Priority,
		CategoryType: t.CategoryType,
		Category:     t.Category,
		SubjectID:    t.SubjectID,
		Description:  t.Description,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return items
}
