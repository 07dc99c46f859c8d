// Package memory implements repository.Store with in-process maps. It
// backs service tests and local development without Postgres. WithinTx
// serializes callers under one mutex; it does not provide rollback.
package memory

import (
	"context"
	"sync"

	"github.com/travault/crm-service/internal/repository"
)

// Store is the in-memory repository bundle.
type Store struct {
	mu sync.Mutex

	tickets   *ticketRepository
	actions   *actionRepository
	subjects  *subjectRepository
	users     *userRepository
	companies *companyRepository
	contacts  *contactRepository
	agencies  *agencyRepository
}

var _ repository.Store = (*Store)(nil)

// NewStore builds an empty in-memory store.
func NewStore() *Store {
	s := &Store{}
	s.tickets = &ticketRepository{records: map[string]*ticketRecord{}}
	s.actions = &actionRepository{store: s, records: map[string]*actionRecord{}}
	s.subjects = &subjectRepository{store: s, records: map[string]*subjectRecord{}}
	s.users = &userRepository{records: map[string]*userRecord{}}
	s.companies = &companyRepository{records: map[string]*companyRecord{}}
	s.contacts = &contactRepository{records: map[string]*contactRecord{}}
	s.agencies = &agencyRepository{records: map[string]*agencyRecord{}}
	return s
}

func (s *Store) Tickets() repository.TicketRepository    { return s.tickets }
func (s *Store) Actions() repository.ActionRepository    { return s.actions }
func (s *Store) Subjects() repository.SubjectRepository  { return s.subjects }
func (s *Store) Users() repository.UserRepository        { return s.users }
func (s *Store) Companies() repository.CompanyRepository { return s.companies }
func (s *Store) Contacts() repository.ContactRepository  { return s.contacts }
func (s *Store) Agencies() repository.AgencyRepository   { return s.agencies }

// WithinTx runs fn while holding the store lock.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}
