package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamevault/catalog/internal/domain"
	"github.com/jackc/pgx/v5"
)

type itemRepo struct{}

// NewItemRepository returns a pgx-backed ItemRepository.
func NewItemRepository() ItemRepository {
	return &itemRepo{}
}

const itemColumns = `id, game_id, name, attributes, created_at, updated_at`

func (r *itemRepo) FindAll(ctx context.Context, db DBTX) ([]domain.Item, error) {
	rows, err := db.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *itemRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Item, error) {
	row := db.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	return scanItem(row)
}

func (r *itemRepo) ListByGame(ctx context.Context, db DBTX, gameID int64) ([]domain.Item, error) {
	rows, err := db.Query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE game_id = $1 ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query game items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *itemRepo) ListByPlayer(ctx context.Context, db DBTX, playerID int64) ([]domain.Item, error) {
	rows, err := db.Query(ctx, `
		SELECT i.id, i.game_id, i.name, i.attributes, i.created_at, i.updated_at
		FROM items i
		JOIN player_items pi ON pi.item_id = i.id
		WHERE pi.player_id = $1
		ORDER BY i.id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("query player items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *itemRepo) Create(ctx context.Context, db DBTX, i *domain.Item) (*domain.Item, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO items (game_id, name, attributes)
		VALUES ($1, $2, $3)
		RETURNING `+itemColumns,
		i.GameID, i.Name, i.Attributes)
	saved, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return saved, nil
}

func (r *itemRepo) Update(ctx context.Context, db DBTX, i *domain.Item) (*domain.Item, error) {
	row := db.QueryRow(ctx, `
		UPDATE items SET name = $1, attributes = $2, updated_at = now()
		WHERE id = $3
		RETURNING `+itemColumns,
		i.Name, i.Attributes, i.ID)
	saved, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return saved, nil
}

func (r *itemRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	_, err := db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var i domain.Item
	err := row.Scan(&i.ID, &i.GameID, &i.Name, &i.Attributes, &i.CreatedAt, &i.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func collectItems(rows pgx.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		var i domain.Item
		if err := rows.Scan(&i.ID, &i.GameID, &i.Name, &i.Attributes, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
