// Package transfer defines the wire representations exchanged with API
// clients. Every resolved resource carries its hyperlink set; collections
// and confirmations are wrapped in small envelopes.
package transfer

import (
	"time"

	"github.com/gamevault/catalog/internal/hateoas"
)

// GameDTO is the client-facing view of a game.
type GameDTO struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Genre       string         `json:"genre"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Links       []hateoas.Link `json:"links,omitempty"`
}

// AchievementDTO is the client-facing view of an achievement.
type AchievementDTO struct {
	ID          int64          `json:"id"`
	GameID      int64          `json:"game_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Links       []hateoas.Link `json:"links,omitempty"`
}

// ItemDTO is the client-facing view of an item.
type ItemDTO struct {
	ID         int64          `json:"id"`
	GameID     int64          `json:"game_id"`
	Name       string         `json:"name"`
	Attributes string         `json:"attributes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Links      []hateoas.Link `json:"links,omitempty"`
}

// PlayerDTO is the client-facing view of a player.
type PlayerDTO struct {
	ID         int64          `json:"id"`
	Nickname   string         `json:"nickname"`
	Email      string         `json:"email,omitempty"`
	Level      int            `json:"level"`
	Experience int            `json:"experience"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Links      []hateoas.Link `json:"links,omitempty"`
}

// AdminDTO is the client-facing view of an admin.
type AdminDTO struct {
	ID         int64          `json:"id"`
	Nickname   string         `json:"nickname"`
	Email      string         `json:"email,omitempty"`
	Level      int            `json:"level"`
	Experience int            `json:"experience"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Links      []hateoas.Link `json:"links,omitempty"`
}

// Collection wraps a list response together with its envelope links.
type Collection struct {
	Items []any          `json:"items"`
	Links []hateoas.Link `json:"links,omitempty"`
}

// Message is the confirmation envelope returned by delete operations.
type Message struct {
	Message string         `json:"message"`
	Links   []hateoas.Link `json:"links,omitempty"`
}

// TokenResponse carries a freshly issued credential.
type TokenResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
}
