package dto

import (
	"time"

	"github.com/travault/crm-service/internal/domain"
)

// ActionRequest payload for adding or editing a manual action.
type ActionRequest struct {
	ActionType domain.TicketActionType `json:"action_type" validate:"required"`
	Details    string                  `json:"details" validate:"required"`
}

// DeleteActionRequest carries the confirmation echo.
type DeleteActionRequest struct {
	ConfirmID string `json:"confirm_id" validate:"required"`
}

// ActionResponse represents one action log entry.
type ActionResponse struct {
	ID                string                  `json:"id"`
	TicketID          string                  `json:"ticket_id"`
	ActionType        domain.TicketActionType `json:"action_type"`
	Details           string                  `json:"details"`
	CreatedByID       *string                 `json:"created_by_id"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedByID       *string                 `json:"updated_by_id"`
	UpdatedAt         time.Time               `json:"updated_at"`
	IsSystemGenerated bool                    `json:"is_system_generated"`
}
