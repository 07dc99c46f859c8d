package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusDev        TicketStatus = "dev"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// TicketCategoryType splits categories into client and agency sets.
type TicketCategoryType string

const (
	CategoryTypeClient TicketCategoryType = "client"
	CategoryTypeAgency TicketCategoryType = "agency"
)

// Ticket is the aggregate root for support tickets. AgencyID is the
// tenant boundary: it is set at creation from the acting user's agency
// and never changes afterwards.
type Ticket struct {
	ID           string
	AgencyID     string
	CompanyID    string
	ContactID    *string
	OwnerID      string
	AssignedToID *string
	UpdatedByID  *string
	Priority     TicketPriority
	CategoryType TicketCategoryType
	Category     string
	SubjectID    string
	Description  string
	Status       TicketStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Closed reports whether the ticket is in its terminal state.
func (t *Ticket) Closed() bool {
	return t.Status == TicketStatusClosed
}

// Clone returns a copy of the ticket with pointer fields detached, for
// use as a pre-edit snapshot.
func (t *Ticket) Clone() *Ticket {
	clone := *t
	clone.ContactID = clonePtr(t.ContactID)
	clone.AssignedToID = clonePtr(t.AssignedToID)
	clone.UpdatedByID = clonePtr(t.UpdatedByID)
	return &clone
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// ValidateCategory checks that category belongs to the choice set
// implied by categoryType.
func ValidateCategory(categoryType TicketCategoryType, category string) bool {
	choices := CategoryChoicesFor(categoryType)
	if choices == nil {
		return false
	}
	return Contains(choices, category)
}
