// Package repository defines the persistence boundary for the CRM
// aggregates. All reads and writes on tenant-owned entities are scoped
// by agency id; no operation returns or mutates a record belonging to
// a different tenant, even given a valid id.
package repository

import (
	"context"
	"errors"

	"github.com/travault/crm-service/internal/domain"
)

// ErrNotFound is returned for missing records and for records that
// exist under a different tenant than the caller's. Both cases look
// identical to prevent tenant enumeration.
var ErrNotFound = errors.New("record not found")

// TicketFilter captures ticket listing parameters.
type TicketFilter struct {
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	OwnerID    *string
	CompanyID  *string
	Limit      int
	Offset     int
}

// TicketRepository persists the ticket aggregate.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, agencyID, id string) (*domain.Ticket, error)
	List(ctx context.Context, agencyID string, filter TicketFilter) ([]domain.Ticket, error)
	CountBySubject(ctx context.Context, agencyID, subjectID string) (int, error)
	Delete(ctx context.Context, agencyID, id string) error
}

// ActionRepository persists ticket action log entries. Action lookups
// are scoped through the owning ticket's agency.
type ActionRepository interface {
	Create(ctx context.Context, action *domain.TicketAction) error
	Update(ctx context.Context, action *domain.TicketAction) error
	GetByID(ctx context.Context, agencyID, id string) (*domain.TicketAction, error)
	ListByTicket(ctx context.Context, ticketID string, order domain.SortOrder) ([]domain.TicketAction, error)
	Delete(ctx context.Context, id string) error
	DeleteByTicket(ctx context.Context, ticketID string) error
}

// SubjectRepository persists deduplicated ticket subjects.
type SubjectRepository interface {
	// GetOrCreate returns the subject matching (agencyID, text) with a
	// case-sensitive exact match, creating it when absent. The boolean
	// reports whether a new row was created.
	GetOrCreate(ctx context.Context, agencyID, text string) (*domain.TicketSubject, bool, error)
	GetByID(ctx context.Context, agencyID, id string) (*domain.TicketSubject, error)
	ListWithCounts(ctx context.Context, agencyID string) ([]domain.SubjectWithCount, error)
	Update(ctx context.Context, subject *domain.TicketSubject) error
	Delete(ctx context.Context, agencyID, id string) error
}

// UserRepository resolves agency members.
type UserRepository interface {
	Create(ctx context.Context, user *domain.CustomUser) error
	GetByID(ctx context.Context, agencyID, id string) (*domain.CustomUser, error)
	GetByUsername(ctx context.Context, username string) (*domain.CustomUser, error)
	ListByAgency(ctx context.Context, agencyID string) ([]domain.CustomUser, error)
}

// CompanyRepository resolves client companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, agencyID, id string) (*domain.Company, error)
}

// ContactRepository resolves company contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, agencyID, id string) (*domain.Contact, error)
}

// AgencyRepository resolves tenants.
type AgencyRepository interface {
	Create(ctx context.Context, agency *domain.Agency) error
	GetByID(ctx context.Context, id string) (*domain.Agency, error)
}

// Store bundles the repositories and provides transactional execution.
// WithinTx runs fn against a Store whose repositories share one
// transaction; the ticket+action write of a mutation always happens
// inside a single WithinTx call.
type Store interface {
	Tickets() TicketRepository
	Actions() ActionRepository
	Subjects() SubjectRepository
	Users() UserRepository
	Companies() CompanyRepository
	Contacts() ContactRepository
	Agencies() AgencyRepository
	WithinTx(ctx context.Context, fn func(Store) error) error
}
