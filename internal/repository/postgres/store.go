// Package postgres implements the repository.Store on a pgx connection
// pool. Repositories accept a Querier so the same code runs against the
// pool and against an open transaction.
package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/travault/crm-service/internal/repository"
)

// Querier is the subset of pgx operations the repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// builder produces queries with Postgres placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store implements repository.Store.
type Store struct {
	db   Querier
	pool *pgxpool.Pool

	tickets   *ticketRepository
	actions   *actionRepository
	subjects  *subjectRepository
	users     *userRepository
	companies *companyRepository
	contacts  *contactRepository
	agencies  *agencyRepository
}

var _ repository.Store = (*Store)(nil)

// NewStore builds a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return newStore(pool, pool)
}

func newStore(db Querier, pool *pgxpool.Pool) *Store {
	return &Store{
		db:        db,
		pool:      pool,
		tickets:   &ticketRepository{db: db},
		actions:   &actionRepository{db: db},
		subjects:  &subjectRepository{db: db},
		users:     &userRepository{db: db},
		companies: &companyRepository{db: db},
		contacts:  &contactRepository{db: db},
		agencies:  &agencyRepository{db: db},
	}
}

func (s *Store) Tickets() repository.TicketRepository    { return s.tickets }
func (s *Store) Actions() repository.ActionRepository    { return s.actions }
func (s *Store) Subjects() repository.SubjectRepository  { return s.subjects }
func (s *Store) Users() repository.UserRepository        { return s.users }
func (s *Store) Companies() repository.CompanyRepository { return s.companies }
func (s *Store) Contacts() repository.ContactRepository  { return s.contacts }
func (s *Store) Agencies() repository.AgencyRepository   { return s.agencies }

// WithinTx executes fn against a transaction-bound Store. Nested calls
// reuse the already-open transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(newStore(tx, nil))
	})
}

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
