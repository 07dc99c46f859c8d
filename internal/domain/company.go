package domain

import "time"

// Company is a client organization managed by an agency. CRUD for
// companies is plain data entry; the ticketing core only resolves them
// as references.
type Company struct {
	ID        string
	AgencyID  string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contact is a person at a company.
type Contact struct {
	ID        string
	AgencyID  string
	CompanyID string
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns the contact's display name.
func (c *Contact) FullName() string {
	if c.FirstName == "" && c.LastName == "" {
		return c.Email
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
