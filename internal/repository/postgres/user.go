package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/travault/crm-service/internal/domain"
)

const userColumns = `id, agency_id, username, email, first_name, last_name, role, password_hash, active, created_at, updated_at`

type userRepository struct {
	db Querier
}

func (r *userRepository) Create(ctx context.Context, user *domain.CustomUser) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO users (id, agency_id, username, email, first_name, last_name, role, password_hash, active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		user.ID,
		user.AgencyID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		user.PasswordHash,
		user.Active,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, agencyID, id string) (*domain.CustomUser, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1 AND agency_id=$2`
	var user domain.CustomUser
	if err := scanUser(r.db.QueryRow(ctx, query, id, agencyID), &user); err != nil {
		return nil, mapNoRows(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.CustomUser, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	var user domain.CustomUser
	if err := scanUser(r.db.QueryRow(ctx, query, username), &user); err != nil {
		return nil, mapNoRows(err)
	}
	return &user, nil
}

func (r *userRepository) ListByAgency(ctx context.Context, agencyID string) ([]domain.CustomUser, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE agency_id=$1 ORDER BY username ASC`
	rows, err := r.db.Query(ctx, query, agencyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomUser
	for rows.Next() {
		var user domain.CustomUser
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func scanUser(row pgx.Row, user *domain.CustomUser) error {
	return row.Scan(
		&user.ID,
		&user.AgencyID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.PasswordHash,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}
