package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/repository"
)

type actionRepository struct {
	db Querier
}

func (r *actionRepository) Create(ctx context.Context, action *domain.TicketAction) error {
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO ticket_actions (id, ticket_id, action_type, details, created_by_id, updated_by_id, is_system_generated)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		action.ID,
		action.TicketID,
		action.ActionType,
		action.Details,
		action.CreatedByID,
		action.UpdatedByID,
		action.IsSystemGenerated,
	).Scan(&action.CreatedAt, &action.UpdatedAt)
}

func (r *actionRepository) Update(ctx context.Context, action *domain.TicketAction) error {
	// created_at and created_by_id are immutable on existing entries.
	const query = `
        UPDATE ticket_actions SET action_type=$1, details=$2, updated_by_id=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.db.Exec(ctx, query,
		action.ActionType,
		action.Details,
		action.UpdatedByID,
		action.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *actionRepository) GetByID(ctx context.Context, agencyID, id string) (*domain.TicketAction, error) {
	// Scoped through the owning ticket's agency so cross-tenant action
	// ids resolve to not-found.
	const query = `
        SELECT a.id, a.ticket_id, a.action_type, a.details, a.created_by_id, a.created_at,
               a.updated_by_id, a.updated_at, a.is_system_generated
        FROM ticket_actions a
        JOIN tickets t ON t.id = a.ticket_id
        WHERE a.id=$1 AND t.agency_id=$2`
	var action domain.TicketAction
	if err := scanAction(r.db.QueryRow(ctx, query, id, agencyID), &action); err != nil {
		return nil, mapNoRows(err)
	}
	return &action, nil
}

func (r *actionRepository) ListByTicket(ctx context.Context, ticketID string, order domain.SortOrder) ([]domain.TicketAction, error) {
	direction := "DESC"
	if order == domain.SortAscending {
		direction = "ASC"
	}
	query := `
        SELECT id, ticket_id, action_type, details, created_by_id, created_at,
               updated_by_id, updated_at, is_system_generated
        FROM ticket_actions WHERE ticket_id=$1 ORDER BY created_at ` + direction
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketAction
	for rows.Next() {
		var action domain.TicketAction
		if err := scanAction(rows, &action); err != nil {
			return nil, err
		}
		result = append(result, action)
	}
	return result, rows.Err()
}

func (r *actionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM ticket_actions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *actionRepository) DeleteByTicket(ctx context.Context, ticketID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM ticket_actions WHERE ticket_id=$1`, ticketID)
	return err
}

func scanAction(row pgx.Row, action *domain.TicketAction) error {
	return row.Scan(
		&action.ID,
		&action.TicketID,
		&action.ActionType,
		&action.Details,
		&action.CreatedByID,
		&action.CreatedAt,
		&action.UpdatedByID,
		&action.UpdatedAt,
		&action.IsSystemGenerated,
	)
}
