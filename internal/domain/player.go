package domain

import "time"

// Player represents a players row. Owned games, achievements and items live
// in join tables and are reached through id lookups, never embedded here.
type Player struct {
	ID         int64     `json:"id"`
	Nickname   string    `json:"nickname"`
	Email      string    `json:"email"`
	Level      int       `json:"level"`
	Experience int       `json:"experience"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Admin has the same shape as Player but a distinct role and table.
type Admin struct {
	ID         int64     `json:"id"`
	Nickname   string    `json:"nickname"`
	Email      string    `json:"email"`
	Level      int       `json:"level"`
	Experience int       `json:"experience"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AppUser holds credentials from app_users. At most one of PlayerID and
// AdminID is set; both are nil once the user has been detached.
type AppUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	PlayerID     *int64    `json:"player_id,omitempty"`
	AdminID      *int64    `json:"admin_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
