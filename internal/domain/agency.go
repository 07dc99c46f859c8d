package domain

import "time"

// Agency is the tenant. Every ticket, subject, company and user belongs
// to exactly one agency and all lookups are scoped by it.
type Agency struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Website   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
