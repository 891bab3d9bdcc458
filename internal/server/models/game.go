package models

import (
	"database/sql"
	"time"
)

// Game is a catalog entry.
type Game struct {
	ID          string
	Title       string
	ImageURL    sql.NullString
	Description sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserGame links a user to a game in their library.
// At most one row per (user, game) pair.
type UserGame struct {
	ID        string
	UserID    string
	GameID    string
	CreatedAt time.Time
}
