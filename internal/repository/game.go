package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamevault/catalog/internal/domain"
	"github.com/jackc/pgx/v5"
)

type gameRepo struct{}

// NewGameRepository returns a pgx-backed GameRepository.
func NewGameRepository() GameRepository {
	return &gameRepo{}
}

const gameColumns = `id, title, genre, description, created_at, updated_at`

func (r *gameRepo) FindAll(ctx context.Context, db DBTX) ([]domain.Game, error) {
	rows, err := db.Query(ctx, `SELECT `+gameColumns+` FROM games ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		var g domain.Game
		if err := rows.Scan(&g.ID, &g.Title, &g.Genre, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *gameRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Game, error) {
	row := db.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	return scanGame(row)
}

func (r *gameRepo) FindByTitle(ctx context.Context, db DBTX, title string) (*domain.Game, error) {
	row := db.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE title = $1`, title)
	return scanGame(row)
}

func (r *gameRepo) Create(ctx context.Context, db DBTX, g *domain.Game) (*domain.Game, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO games (title, genre, description)
		VALUES ($1, $2, $3)
		RETURNING `+gameColumns,
		g.Title, g.Genre, g.Description)
	saved, err := scanGame(row)
	if err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}
	return saved, nil
}

func (r *gameRepo) Update(ctx context.Context, db DBTX, g *domain.Game) (*domain.Game, error) {
	row := db.QueryRow(ctx, `
		UPDATE games SET title = $1, genre = $2, description = $3, updated_at = now()
		WHERE id = $4
		RETURNING `+gameColumns,
		g.Title, g.Genre, g.Description, g.ID)
	saved, err := scanGame(row)
	if err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}
	return saved, nil
}

func (r *gameRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	_, err := db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	err := row.Scan(&g.ID, &g.Title, &g.Genre, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
