package domain

import "time"

// Game represents a games row. Achievements and items reference it by id;
// the struct itself never embeds them.
type Game struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Achievement belongs to exactly one game.
type Achievement struct {
	ID          int64     `json:"id"`
	GameID      int64     `json:"game_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Item belongs to exactly one game. Attributes is a free-form description of
// the item's properties.
type Item struct {
	ID         int64     `json:"id"`
	GameID     int64     `json:"game_id"`
	Name       string    `json:"name"`
	Attributes string    `json:"attributes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
