package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/repository"
)

const ticketColumns = `id, agency_id, company_id, contact_id, owner_id, assigned_to_id, updated_by_id,
               priority, category_type, category, subject_id, description, status, created_at, updated_at`

type ticketRepository struct {
	db Querier
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO tickets (id, agency_id, company_id, contact_id, owner_id, assigned_to_id, updated_by_id,
            priority, category_type, category, subject_id, description, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		ticket.ID,
		ticket.AgencyID,
		ticket.CompanyID,
		ticket.ContactID,
		ticket.OwnerID,
		ticket.AssignedToID,
		ticket.UpdatedByID,
		ticket.Priority,
		ticket.CategoryType,
		ticket.Category,
		ticket.SubjectID,
		ticket.Description,
		ticket.Status,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	// agency_id is deliberately absent from the SET list: the tenant of
	// a ticket never changes after creation.
	const query = `
        UPDATE tickets SET company_id=$1, contact_id=$2, owner_id=$3, assigned_to_id=$4, updated_by_id=$5,
            priority=$6, category_type=$7, category=$8, subject_id=$9, description=$10, status=$11, updated_at=NOW()
        WHERE id=$12 AND agency_id=$13`
	cmd, err := r.db.Exec(ctx, query,
		ticket.CompanyID,
		ticket.ContactID,
		ticket.OwnerID,
		ticket.AssignedToID,
		ticket.UpdatedByID,
		ticket.Priority,
		ticket.CategoryType,
		ticket.Category,
		ticket.SubjectID,
		ticket.Description,
		ticket.Status,
		ticket.ID,
		ticket.AgencyID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, agencyID, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1 AND agency_id=$2`
	var ticket domain.Ticket
	if err := scanTicket(r.db.QueryRow(ctx, query, id, agencyID), &ticket); err != nil {
		return nil, mapNoRows(err)
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, agencyID string, filter repository.TicketFilter) ([]domain.Ticket, error) {
	q := builder.Select(ticketColumns).
		From("tickets").
		Where(sq.Eq{"agency_id": agencyID}).
		OrderBy("created_at DESC")

	if len(filter.Statuses) > 0 {
		q = q.Where(sq.Eq{"status": filter.Statuses})
	}
	if len(filter.Priorities) > 0 {
		q = q.Where(sq.Eq{"priority": filter.Priorities})
	}
	if filter.OwnerID != nil {
		q = q.Where(sq.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.CompanyID != nil {
		q = q.Where(sq.Eq{"company_id": *filter.CompanyID})
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	q = q.Limit(uint64(limit))
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) CountBySubject(ctx context.Context, agencyID, subjectID string) (int, error) {
	const query = `SELECT COUNT(*) FROM tickets WHERE agency_id=$1 AND subject_id=$2`
	var count int
	if err := r.db.QueryRow(ctx, query, agencyID, subjectID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ticketRepository) Delete(ctx context.Context, agencyID, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id=$1 AND agency_id=$2`, id, agencyID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.AgencyID,
		&ticket.CompanyID,
		&ticket.ContactID,
		&ticket.OwnerID,
		&ticket.AssignedToID,
		&ticket.UpdatedByID,
		&ticket.Priority,
		&ticket.CategoryType,
		&ticket.Category,
		&ticket.SubjectID,
		&ticket.Description,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
