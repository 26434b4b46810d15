package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamevault/catalog/internal/domain"
	"github.com/jackc/pgx/v5"
)

type adminRepo struct{}

// NewAdminRepository returns a pgx-backed AdminRepository.
func NewAdminRepository() AdminRepository {
	return &adminRepo{}
}

const adminColumns = `id, nickname, email, level, experience, created_at, updated_at`

func (r *adminRepo) FindAll(ctx context.Context, db DBTX) ([]domain.Admin, error) {
	rows, err := db.Query(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query admins: %w", err)
	}
	defer rows.Close()

	var admins []domain.Admin
	for rows.Next() {
		var a domain.Admin
		if err := rows.Scan(&a.ID, &a.Nickname, &a.Email, &a.Level, &a.Experience, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func (r *adminRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Admin, error) {
	row := db.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
	return scanAdmin(row)
}

func (r *adminRepo) Create(ctx context.Context, db DBTX, a *domain.Admin) (*domain.Admin, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO admins (nickname, email, level, experience)
		VALUES ($1, $2, $3, $4)
		RETURNING `+adminColumns,
		a.Nickname, a.Email, a.Level, a.Experience)
	saved, err := scanAdmin(row)
	if err != nil {
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return saved, nil
}

func (r *adminRepo) Update(ctx context.Context, db DBTX, a *domain.Admin) (*domain.Admin, error) {
	row := db.QueryRow(ctx, `
		UPDATE admins SET nickname = $1, email = $2, level = $3, experience = $4, updated_at = now()
		WHERE id = $5
		RETURNING `+adminColumns,
		a.Nickname, a.Email, a.Level, a.Experience, a.ID)
	saved, err := scanAdmin(row)
	if err != nil {
		return nil, fmt.Errorf("update admin: %w", err)
	}
	return saved, nil
}

func (r *adminRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	_, err := db.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	return nil
}

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var a domain.Admin
	err := row.Scan(&a.ID, &a.Nickname, &a.Email, &a.Level, &a.Experience, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
