package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamevault/catalog/internal/domain"
	"github.com/jackc/pgx/v5"
)

type appUserRepo struct{}

// NewAppUserRepository returns a pgx-backed AppUserRepository.
func NewAppUserRepository() AppUserRepository {
	return &appUserRepo{}
}

const appUserColumns = `id, username, password_hash, role, player_id, admin_id, created_at, updated_at`

func (r *appUserRepo) FindByUsername(ctx context.Context, db DBTX, username string) (*domain.AppUser, error) {
	row := db.QueryRow(ctx, `SELECT `+appUserColumns+` FROM app_users WHERE username = $1`, username)
	return scanAppUser(row)
}

func (r *appUserRepo) FindByPlayer(ctx context.Context, db DBTX, playerID int64) (*domain.AppUser, error) {
	row := db.QueryRow(ctx, `SELECT `+appUserColumns+` FROM app_users WHERE player_id = $1`, playerID)
	return scanAppUser(row)
}

func (r *appUserRepo) FindByAdmin(ctx context.Context, db DBTX, adminID int64) (*domain.AppUser, error) {
	row := db.QueryRow(ctx, `SELECT `+appUserColumns+` FROM app_users WHERE admin_id = $1`, adminID)
	return scanAppUser(row)
}

func (r *appUserRepo) Create(ctx context.Context, db DBTX, u *domain.AppUser) (*domain.AppUser, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO app_users (username, password_hash, role, player_id, admin_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+appUserColumns,
		u.Username, u.PasswordHash, u.Role, u.PlayerID, u.AdminID)
	saved, err := scanAppUser(row)
	if err != nil {
		return nil, fmt.Errorf("insert app user: %w", err)
	}
	return saved, nil
}

func (r *appUserRepo) Detach(ctx context.Context, db DBTX, userID int64) error {
	tag, err := db.Exec(ctx, `
		UPDATE app_users SET player_id = NULL, admin_id = NULL, updated_at = now()
		WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("detach app user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("AppUser", fmt.Sprintf("%d", userID))
	}
	return nil
}

func (r *appUserRepo) Delete(ctx context.Context, db DBTX, userID int64) error {
	_, err := db.Exec(ctx, `DELETE FROM app_users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete app user: %w", err)
	}
	return nil
}

func scanAppUser(row pgx.Row) (*domain.AppUser, error) {
	var u domain.AppUser
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.PlayerID, &u.AdminID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
