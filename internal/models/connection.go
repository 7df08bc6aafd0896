package models

import "time"

// Connection is a directed follow edge From -> To, both account hashes.
// At most one row exists per pair; toggling off deletes it.
type Connection struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	From      string    `gorm:"column:from_hash;size:32;not null;uniqueIndex:idx_connections_pair" json:"from"`
	To        string    `gorm:"column:to_hash;size:32;not null;uniqueIndex:idx_connections_pair;index" json:"to"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Connection) TableName() string {
	return "connections"
}

// ToggleResult is the outcome of a connect action.
type ToggleResult struct {
	NowFollowing bool  `json:"now_following"`
	Followers    int64 `json:"followers"`
}
