package dto

import "time"

// SubjectRequest payload for creating or renaming a subject.
type SubjectRequest struct {
	Subject string `json:"subject" validate:"required"`
}

// SubjectResponse represents a catalog entry with its usage count.
type SubjectResponse struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	TicketCount int       `json:"ticket_count"`
	CreatedAt   time.Time `json:"created_at"`
}
