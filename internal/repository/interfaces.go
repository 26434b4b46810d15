package repository

import (
	"context"
	"errors"

	"github.com/gamevault/catalog/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// TxBeginner starts transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (duplicate title, nickname or username).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// GameRepository provides access to games.
type GameRepository interface {
	// FindAll returns all games in store order.
	FindAll(ctx context.Context, db DBTX) ([]domain.Game, error)

	// FindByID returns a game by id, or nil if absent.
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Game, error)

	// FindByTitle returns a game by its unique title, or nil if absent.
	FindByTitle(ctx context.Context, db DBTX, title string) (*domain.Game, error)

	// Create inserts a new game; the store assigns the id.
	Create(ctx context.Context, db DBTX, g *domain.Game) (*domain.Game, error)

	// Update persists the mutable fields of an existing game.
	Update(ctx context.Context, db DBTX, g *domain.Game) (*domain.Game, error)

	// Delete removes a game by id.
	Delete(ctx context.Context, db DBTX, id int64) error
}

// AchievementRepository provides access to achievements.
type AchievementRepository interface {
	FindAll(ctx context.Context, db DBTX) ([]domain.Achievement, error)
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Achievement, error)

	// ListByGame returns the achievements owned by a game.
	ListByGame(ctx context.Context, db DBTX, gameID int64) ([]domain.Achievement, error)

	// ListByPlayer returns the achievements a player has unlocked.
	ListByPlayer(ctx context.Context, db DBTX, playerID int64) ([]domain.Achievement, error)

	Create(ctx context.Context, db DBTX, a *domain.Achievement) (*domain.Achievement, error)
	Update(ctx context.Context, db DBTX, a *domain.Achievement) (*domain.Achievement, error)
	Delete(ctx context.Context, db DBTX, id int64) error
}

// ItemRepository provides access to items.
type ItemRepository interface {
	FindAll(ctx context.Context, db DBTX) ([]domain.Item, error)
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Item, error)
	ListByGame(ctx context.Context, db DBTX, gameID int64) ([]domain.Item, error)
	ListByPlayer(ctx context.Context, db DBTX, playerID int64) ([]domain.Item, error)
	Create(ctx context.Context, db DBTX, i *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, db DBTX, i *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, db DBTX, id int64) error
}

// PlayerRepository provides access to players and their ownership records.
type PlayerRepository interface {
	FindAll(ctx context.Context, db DBTX) ([]domain.Player, error)
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Player, error)
	Create(ctx context.Context, db DBTX, p *domain.Player) (*domain.Player, error)
	Update(ctx context.Context, db DBTX, p *domain.Player) (*domain.Player, error)
	Delete(ctx context.Context, db DBTX, id int64) error

	// ListGames returns the games a player owns via player_games.
	ListGames(ctx context.Context, db DBTX, playerID int64) ([]domain.Game, error)

	// Grant* insert ownership join rows. Granting twice is a no-op.
	GrantGame(ctx context.Context, db DBTX, playerID, gameID int64) error
	GrantAchievement(ctx context.Context, db DBTX, playerID, achievementID int64) error
	GrantItem(ctx context.Context, db DBTX, playerID, itemID int64) error
}

// AdminRepository provides access to admins.
type AdminRepository interface {
	FindAll(ctx context.Context, db DBTX) ([]domain.Admin, error)
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Admin, error)
	Create(ctx context.Context, db DBTX, a *domain.Admin) (*domain.Admin, error)
	Update(ctx context.Context, db DBTX, a *domain.Admin) (*domain.Admin, error)
	Delete(ctx context.Context, db DBTX, id int64) error
}

// AppUserRepository provides access to app_users credential records.
type AppUserRepository interface {
	FindByUsername(ctx context.Context, db DBTX, username string) (*domain.AppUser, error)
	FindByPlayer(ctx context.Context, db DBTX, playerID int64) (*domain.AppUser, error)
	FindByAdmin(ctx context.Context, db DBTX, adminID int64) (*domain.AppUser, error)
	Create(ctx context.Context, db DBTX, u *domain.AppUser) (*domain.AppUser, error)

	// Detach nulls out the user's player/admin reference ahead of deletion.
	Detach(ctx context.Context, db DBTX, userID int64) error

	Delete(ctx context.Context, db DBTX, userID int64) error
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the entity write).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events in insertion order.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxEvent, error)

	// MarkPublished stamps events as published.
	MarkPublished(ctx context.Context, db DBTX, seqIDs []int64) error
}
