package domain

import "time"

// TicketActionType categorizes entries in a ticket's action log.
type TicketActionType string

const (
	ActionTypeActionTaken TicketActionType = "action_taken"
	ActionTypeUpdate      TicketActionType = "update"
	ActionTypeResponse    TicketActionType = "response"
	ActionTypeOutcome     TicketActionType = "outcome"
)

// TicketAction records something that happened to a ticket, either
// entered manually by a user or generated by the audit recorder.
// CreatedAt is immutable once written; edits may only touch ActionType,
// Details and UpdatedByID.
type TicketAction struct {
	ID                string
	TicketID          string
	ActionType        TicketActionType
	Details           string
	CreatedByID       *string
	CreatedAt         time.Time
	UpdatedByID       *string
	UpdatedAt         time.Time
	IsSystemGenerated bool
}

// SortOrder selects action log ordering by creation time.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)
