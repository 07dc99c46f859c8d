package domain

import "time"

// TicketSubject is a deduplicated subject line. Subject text is unique
// within an agency but may repeat across agencies.
type TicketSubject struct {
	ID        string
	AgencyID  string
	Subject   string
	CreatedAt time.Time
}

// SubjectWithCount pairs a subject with the number of tickets
// referencing it, for the management listing.
type SubjectWithCount struct {
	TicketSubject
	TicketCount int
}
