package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/travault/crm-service/internal/domain"
)

type companyRepository struct {
	db Querier
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO companies (id, agency_id, name, email, phone)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		company.ID,
		company.AgencyID,
		company.Name,
		company.Email,
		company.Phone,
	).Scan(&company.CreatedAt, &company.UpdatedAt)
}

func (r *companyRepository) GetByID(ctx context.Context, agencyID, id string) (*domain.Company, error) {
	const query = `
        SELECT id, agency_id, name, email, phone, created_at, updated_at
        FROM companies WHERE id=$1 AND agency_id=$2`
	var company domain.Company
	err := r.db.QueryRow(ctx, query, id, agencyID).Scan(
		&company.ID,
		&company.AgencyID,
		&company.Name,
		&company.Email,
		&company.Phone,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &company, nil
}

type contactRepository struct {
	db Querier
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO contacts (id, agency_id, company_id, first_name, last_name, email)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		contact.ID,
		contact.AgencyID,
		contact.CompanyID,
		contact.FirstName,
		contact.LastName,
		contact.Email,
	).Scan(&contact.CreatedAt, &contact.UpdatedAt)
}

func (r *contactRepository) GetByID(ctx context.Context, agencyID, id string) (*domain.Contact, error) {
	const query = `
        SELECT id, agency_id, company_id, first_name, last_name, email, created_at, updated_at
        FROM contacts WHERE id=$1 AND agency_id=$2`
	var contact domain.Contact
	err := r.db.QueryRow(ctx, query, id, agencyID).Scan(
		&contact.ID,
		&contact.AgencyID,
		&contact.CompanyID,
		&contact.FirstName,
		&contact.LastName,
		&contact.Email,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &contact, nil
}
