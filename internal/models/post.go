package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostKind is the listing category.
type PostKind string

const (
	// PostKindProduct is a request for a physical product.
	PostKindProduct PostKind = "product"
	// PostKindService is a request for a service.
	PostKindService PostKind = "service"
)

// Valid reports whether k is a supported kind.
func (k PostKind) Valid() bool {
	return k == PostKindProduct || k == PostKindService
}

// Post represents a marketplace listing.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	Hash      string     `gorm:"size:32;uniqueIndex;not null" json:"hash"`
	Kind      PostKind   `gorm:"type:varchar(16);not null" json:"kind"`
	Author    string     `gorm:"size:32;not null;index" json:"author"`
	Name      string     `gorm:"size:200;not null" json:"name"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Location  string     `gorm:"size:200;not null" json:"location"`
	Price     int64      `gorm:"not null;default:0" json:"price"`
	Views     int64      `gorm:"not null;default:0" json:"views"`
	Published bool       `gorm:"not null" json:"published"`
	End       *time.Time `gorm:"column:end_at" json:"end,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	PostAuthor *Account `gorm:"foreignKey:Author;references:Hash;constraint:OnDelete:CASCADE" json:"post_author,omitempty"`
	// You reports whether the caller authored this post (computed).
	You bool `gorm:"-" json:"you"`
	// PriceDisplay renders Price, stored in minor units, with two decimals.
	PriceDisplay string `gorm:"-" json:"price_display"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// FormatMinorUnits renders an amount stored in minor currency units, e.g. 12345 -> "123.45".
func FormatMinorUnits(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}
