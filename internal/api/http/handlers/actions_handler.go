package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/travault/crm-service/internal/api/dto"
	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/service"
)

// ActionsHandler manages ticket action log endpoints.
type ActionsHandler struct {
	service *service.ActionService
}

// NewActionsHandler constructs handler.
func NewActionsHandler(actionService *service.ActionService) *ActionsHandler {
	return &ActionsHandler{service: actionService}
}

// AddAction POST /tickets/:id/actions.
func (h *ActionsHandler) AddAction(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.ActionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	action, err := h.service.AddAction(c.UserContext(), actor, c.Params("id"), service.ActionInput{
		ActionType: req.ActionType,
		Details:    req.Details,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": actionResponse(action)})
}

// ListActions GET /tickets/:id/actions. Order defaults to newest
// first; pass order=asc for chronological output.
func (h *ActionsHandler) ListActions(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	order := domain.SortOrder(c.Query("order"))
	actions, err := h.service.ListActions(c.UserContext(), actor, c.Params("id"), order)
	if err != nil {
		return err
	}
	items := make([]dto.ActionResponse, 0, len(actions))
	for i := range actions {
		items = append(items, actionResponse(&actions[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// EditAction PUT /actions/:id.
func (h *ActionsHandler) EditAction(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.ActionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	action, err := h.service.EditAction(c.UserContext(), actor, c.Params("id"), service.ActionInput{
		ActionType: req.ActionType,
		Details:    req.Details,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": actionResponse(action)})
}

// DeleteAction DELETE /actions/:id. Admin only; the body must echo the
// action id.
func (h *ActionsHandler) DeleteAction(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.DeleteActionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.service.DeleteAction(c.UserContext(), actor, c.Params("id"), req.ConfirmID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func actionResponse(a *domain.TicketAction) dto.ActionResponse {
	return dto.ActionResponse{
		ID:                a.ID,
		TicketID:          a.TicketID,
		ActionType:        a.ActionType,
		Details:           a.Details,
		CreatedByID:       a.CreatedByID,
		CreatedAt:         a.CreatedAt,
		UpdatedByID:       a.UpdatedByID,
		UpdatedAt:         a.UpdatedAt,
		IsSystemGenerated: a.IsSystemGenerated,
	}
}
