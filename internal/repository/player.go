package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamevault/catalog/internal/domain"
	"github.com/jackc/pgx/v5"
)

type playerRepo struct{}

// NewPlayerRepository returns a pgx-backed PlayerRepository.
func NewPlayerRepository() PlayerRepository {
	return &playerRepo{}
}

const playerColumns = `id, nickname, email, level, experience, created_at, updated_at`

func (r *playerRepo) FindAll(ctx context.Context, db DBTX) ([]domain.Player, error) {
	rows, err := db.Query(ctx, `SELECT `+playerColumns+` FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Nickname, &p.Email, &p.Level, &p.Experience, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *playerRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Player, error) {
	row := db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	return scanPlayer(row)
}

func (r *playerRepo) Create(ctx context.Context, db DBTX, p *domain.Player) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO players (nickname, email, level, experience)
		VALUES ($1, $2, $3, $4)
		RETURNING `+playerColumns,
		p.Nickname, p.Email, p.Level, p.Experience)
	saved, err := scanPlayer(row)
	if err != nil {
		return nil, fmt.Errorf("insert player: %w", err)
	}
	return saved, nil
}

func (r *playerRepo) Update(ctx context.Context, db DBTX, p *domain.Player) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		UPDATE players SET nickname = $1, email = $2, level = $3, experience = $4, updated_at = now()
		WHERE id = $5
		RETURNING `+playerColumns,
		p.Nickname, p.Email, p.Level, p.Experience, p.ID)
	saved, err := scanPlayer(row)
	if err != nil {
		return nil, fmt.Errorf("update player: %w", err)
	}
	return saved, nil
}

func (r *playerRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	_, err := db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func (r *playerRepo) ListGames(ctx context.Context, db DBTX, playerID int64) ([]domain.Game, error) {
	rows, err := db.Query(ctx, `
		SELECT g.id, g.title, g.genre, g.description, g.created_at, g.updated_at
		FROM games g
		JOIN player_games pg ON pg.game_id = g.id
		WHERE pg.player_id = $1
		ORDER BY g.id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("query player games: %w", err)
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

func (r *playerRepo) GrantGame(ctx context.Context, db DBTX, playerID, gameID int64) error {
	_, err := db.Exec(ctx, `
		INSERT INTO player_games (player_id, game_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, playerID, gameID)
	if err != nil {
		return fmt.Errorf("grant game: %w", err)
	}
	return nil
}

func (r *playerRepo) GrantAchievement(ctx context.Context, db DBTX, playerID, achievementID int64) error {
	_, err := db.Exec(ctx, `
		INSERT INTO player_achievements (player_id, achievement_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, playerID, achievementID)
	if err != nil {
		return fmt.Errorf("grant achievement: %w", err)
	}
	return nil
}

func (r *playerRepo) GrantItem(ctx context.Context, db DBTX, playerID, itemID int64) error {
	_, err := db.Exec(ctx, `
		INSERT INTO player_items (player_id, item_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, playerID, itemID)
	if err != nil {
		return fmt.Errorf("grant item: %w", err)
	}
	return nil
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.ID, &p.Nickname, &p.Email, &p.Level, &p.Experience, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
