package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamevault/catalog/internal/domain"
	"github.com/jackc/pgx/v5"
)

type achievementRepo struct{}

// NewAchievementRepository returns a pgx-backed AchievementRepository.
func NewAchievementRepository() AchievementRepository {
	return &achievementRepo{}
}

const achievementColumns = `id, game_id, name, description, created_at, updated_at`

func (r *achievementRepo) FindAll(ctx context.Context, db DBTX) ([]domain.Achievement, error) {
	rows, err := db.Query(ctx, `SELECT `+achievementColumns+` FROM achievements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query achievements: %w", err)
	}
	defer rows.Close()
	return collectAchievements(rows)
}

func (r *achievementRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Achievement, error) {
	row := db.QueryRow(ctx, `SELECT `+achievementColumns+` FROM achievements WHERE id = $1`, id)
	return scanAchievement(row)
}

func (r *achievementRepo) ListByGame(ctx context.Context, db DBTX, gameID int64) ([]domain.Achievement, error) {
	rows, err := db.Query(ctx,
		`SELECT `+achievementColumns+` FROM achievements WHERE game_id = $1 ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query game achievements: %w", err)
	}
	defer rows.Close()
	return collectAchievements(rows)
}

func (r *achievementRepo) ListByPlayer(ctx context.Context, db DBTX, playerID int64) ([]domain.Achievement, error) {
	rows, err := db.Query(ctx, `
		SELECT a.id, a.game_id, a.name, a.description, a.created_at, a.updated_at
		FROM achievements a
		JOIN player_achievements pa ON pa.achievement_id = a.id
		WHERE pa.player_id = $1
		ORDER BY a.id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("query player achievements: %w", err)
	}
	defer rows.Close()
	return collectAchievements(rows)
}

func (r *achievementRepo) Create(ctx context.Context, db DBTX, a *domain.Achievement) (*domain.Achievement, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO achievements (game_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING `+achievementColumns,
		a.GameID, a.Name, a.Description)
	saved, err := scanAchievement(row)
	if err != nil {
		return nil, fmt.Errorf("insert achievement: %w", err)
	}
	return saved, nil
}

func (r *achievementRepo) Update(ctx context.Context, db DBTX, a *domain.Achievement) (*domain.Achievement, error) {
	row := db.QueryRow(ctx, `
		UPDATE achievements SET name = $1, description = $2, updated_at = now()
		WHERE id = $3
		RETURNING `+achievementColumns,
		a.Name, a.Description, a.ID)
	saved, err := scanAchievement(row)
	if err != nil {
		return nil, fmt.Errorf("update achievement: %w", err)
	}
	return saved, nil
}

func (r *achievementRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	_, err := db.Exec(ctx, `DELETE FROM achievements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete achievement: %w", err)
	}
	return nil
}

func scanAchievement(row pgx.Row) (*domain.Achievement, error) {
	var a domain.Achievement
	err := row.Scan(&a.ID, &a.GameID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAchievements(rows pgx.Rows) ([]domain.Achievement, error) {
	var achievements []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.ID, &a.GameID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}
