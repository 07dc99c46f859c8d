package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/travault/crm-service/internal/domain"
)

type agencyRepository struct {
	db Querier
}

func (r *agencyRepository) Create(ctx context.Context, agency *domain.Agency) error {
	if agency.ID == "" {
		agency.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO agencies (id, name, email, phone, website)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		agency.ID,
		agency.Name,
		agency.Email,
		agency.Phone,
		agency.Website,
	).Scan(&agency.CreatedAt, &agency.UpdatedAt)
}

func (r *agencyRepository) GetByID(ctx context.Context, id string) (*domain.Agency, error) {
	const query = `
        SELECT id, name, email, phone, website, created_at, updated_at
        FROM agencies WHERE id=$1`
	var agency domain.Agency
	err := r.db.QueryRow(ctx, query, id).Scan(
		&agency.ID,
		&agency.Name,
		&agency.Email,
		&agency.Phone,
		&agency.Website,
		&agency.CreatedAt,
		&agency.UpdatedAt,
	)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &agency, nil
}
