package dto

import (
	"time"

	"github.com/travault/crm-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	CompanyID    string                    `json:"company_id" validate:"required"`
	ContactID    *string                   `json:"contact_id"`
	OwnerID      *string                   `json:"owner_id"`
	AssignedToID *string                   `json:"assigned_to_id"`
	Priority     domain.TicketPriority     `json:"priority" validate:"required"`
	CategoryType domain.TicketCategoryType `json:"category_type" validate:"required"`
	Category     string                    `json:"category" validate:"required"`
	Subject      string                    `json:"subject" validate:"required"`
	Description  string                    `json:"description" validate:"required"`
}

// EditTicketRequest is the full-form edit payload. Every field is
// submitted; unchanged values are sent back as-is.
type EditTicketRequest struct {
	CompanyID    string                    `json:"company_id" validate:"required"`
	ContactID    *string                   `json:"contact_id"`
	OwnerID      string                    `json:"owner_id" validate:"required"`
	AssignedToID *string                   `json:"assigned_to_id"`
	Priority     domain.TicketPriority     `json:"priority" validate:"required"`
	CategoryType domain.TicketCategoryType `json:"category_type" validate:"required"`
	Category     string                    `json:"category" validate:"required"`
	Subject      string                    `json:"subject" validate:"required"`
	Description  string                    `json:"description" validate:"required"`
	Status       domain.TicketStatus       `json:"status" validate:"required"`
}

// UpdateTicketFieldRequest targets a single field from the detail
// view.
type UpdateTicketFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// UpdateTicketFieldResponse mirrors the inline update contract.
type UpdateTicketFieldResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Reload  bool   `json:"reload"`
}

// DeleteTicketRequest carries the confirmation echo.
type DeleteTicketRequest struct {
	ConfirmID string `json:"confirm_id" validate:"required"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	ID           string                    `json:"id"`
	CompanyID    string                    `json:"company_id"`
	ContactID    *string                   `json:"contact_id"`
	OwnerID      string                    `json:"owner_id"`
	AssignedToID *string                   `json:"assigned_to_id"`
	Priority     domain.TicketPriority     `json:"priority"`
	CategoryType domain.TicketCategoryType `json:"category_type"`
	Category     string                    `json:"category"`
	SubjectID    string                    `json:"subject_id"`
	Description  string                    `json:"description"`
	Status       domain.TicketStatus       `json:"status"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}
