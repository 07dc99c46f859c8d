package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/repository"
)

type subjectRepository struct {
	db Querier
}

func (r *subjectRepository) GetOrCreate(ctx context.Context, agencyID, text string) (*domain.TicketSubject, bool, error) {
	var subject domain.TicketSubject
	err := r.db.QueryRow(ctx,
		`SELECT id, agency_id, subject, created_at FROM ticket_subjects WHERE agency_id=$1 AND subject=$2`,
		agencyID, text,
	).Scan(&subject.ID, &subject.AgencyID, &subject.Subject, &subject.CreatedAt)
	if err == nil {
		return &subject, false, nil
	}
	if mapNoRows(err) != repository.ErrNotFound {
		return nil, false, err
	}

	subject = domain.TicketSubject{ID: uuid.NewString(), AgencyID: agencyID, Subject: text}
	// Concurrent creators race on the (agency_id, subject) unique
	// constraint; the loser falls back to the winner's row.
	err = r.db.QueryRow(ctx,
		`INSERT INTO ticket_subjects (id, agency_id, subject) VALUES ($1,$2,$3)
         ON CONFLICT (agency_id, subject) DO UPDATE SET subject=EXCLUDED.subject
         RETURNING id, created_at`,
		subject.ID, agencyID, text,
	).Scan(&subject.ID, &subject.CreatedAt)
	if err != nil {
		return nil, false, err
	}
	return &subject, true, nil
}

func (r *subjectRepository) GetByID(ctx context.Context, agencyID, id string) (*domain.TicketSubject, error) {
	var subject domain.TicketSubject
	err := r.db.QueryRow(ctx,
		`SELECT id, agency_id, subject, created_at FROM ticket_subjects WHERE id=$1 AND agency_id=$2`,
		id, agencyID,
	).Scan(&subject.ID, &subject.AgencyID, &subject.Subject, &subject.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &subject, nil
}

func (r *subjectRepository) ListWithCounts(ctx context.Context, agencyID string) ([]domain.SubjectWithCount, error) {
	q := builder.Select("s.id", "s.agency_id", "s.subject", "s.created_at", "COUNT(t.id) AS ticket_count").
		From("ticket_subjects s").
		LeftJoin("tickets t ON t.subject_id = s.id").
		Where(sq.Eq{"s.agency_id": agencyID}).
		GroupBy("s.id", "s.agency_id", "s.subject", "s.created_at").
		OrderBy("LOWER(s.subject) ASC")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SubjectWithCount
	for rows.Next() {
		var entry domain.SubjectWithCount
		if err := rows.Scan(&entry.ID, &entry.AgencyID, &entry.Subject, &entry.CreatedAt, &entry.TicketCount); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *subjectRepository) Update(ctx context.Context, subject *domain.TicketSubject) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE ticket_subjects SET subject=$1 WHERE id=$2 AND agency_id=$3`,
		subject.Subject, subject.ID, subject.AgencyID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *subjectRepository) Delete(ctx context.Context, agencyID, id string) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM ticket_subjects WHERE id=$1 AND agency_id=$2`, id, agencyID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
