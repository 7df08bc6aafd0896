// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Contact holds the optional public contact details of an account.
type Contact struct {
	Phone    string `json:"phone,omitempty"`
	Whatsapp string `json:"whatsapp,omitempty"`
	Website  string `json:"website,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Value implements driver.Valuer so Contact is stored as jsonb.
func (c Contact) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for the jsonb column.
func (c *Contact) Scan(value interface{}) error {
	if value == nil {
		*c = Contact{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("contact: unsupported scan type")
	}
	if len(raw) == 0 {
		*c = Contact{}
		return nil
	}
	return json.Unmarshal(raw, c)
}

// Account is a registered member of the marketplace, addressed publicly by Hash.
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Hash      string    `gorm:"size:32;uniqueIndex;not null" json:"hash"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email,omitempty"`
	Password  string    `gorm:"not null" json:"-"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Picture   string    `json:"picture"`
	Contact   *Contact  `gorm:"type:jsonb" json:"contact,omitempty"`
	Verified  bool      `gorm:"not null;default:false" json:"verified"`
	Followers int64     `gorm:"not null;default:0" json:"followers"`
	Following int64     `gorm:"not null;default:0" json:"following"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	// IsFollowing reports whether the caller follows this account (computed).
	IsFollowing bool `gorm:"->;-:migration" json:"is_following"`
	// You reports whether this account is the caller (computed).
	You bool `gorm:"-" json:"you"`
	// ConnectedAt is the creation time of the edge that surfaced this row in a followers/following list.
	ConnectedAt *time.Time `gorm:"->;-:migration" json:"connected_at,omitempty"`
}

// TableName specifies the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// Public strips fields only the owner may see.
func (a *Account) Public() {
	a.Email = ""
	a.Contact = nil
}
