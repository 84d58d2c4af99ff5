package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionModel mirrors the 'sessions' table.
type SessionModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       *uuid.UUID `gorm:"type:uuid;index"`
	IsGuest      bool       `gorm:"not null;default:false"`
	DiscountCode string     `gorm:"type:varchar(50)"`
	Theme        string     `gorm:"type:varchar(10);not null;default:'light'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

// ItemSnapshot is the by-value copy of a catalog item kept on cart and order lines.
type ItemSnapshot struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description,omitempty"`
	TastingNotes []string        `json:"tasting_notes,omitempty"`
	Ingredients  []string        `json:"ingredients,omitempty"`
	Image        string          `json:"image,omitempty"`
}

// CartLineModel mirrors the 'cart_lines' table.
type CartLineModel struct {
	ID        uint         `gorm:"primaryKey;autoIncrement"`
	SessionID uuid.UUID    `gorm:"type:uuid;not null;index:idx_cart_lines_session_position,priority:1"`
	Position  int          `gorm:"not null;index:idx_cart_lines_session_position,priority:2"`
	Item      ItemSnapshot `gorm:"type:text;serializer:json;not null"`
	Quantity  int          `gorm:"not null;check:chk_cart_lines_quantity,quantity >= 1"`
	Size      string       `gorm:"type:varchar(1);not null"`
	Milk      string       `gorm:"type:varchar(20);not null"`
	Sweetness int          `gorm:"not null"`
	Ice       string       `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartLineModel) TableName() string {
	return "cart_lines"
}

// WishlistEntryModel mirrors the 'wishlist_entries' table.
type WishlistEntryModel struct {
	SessionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    int       `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (WishlistEntryModel) TableName() string {
	return "wishlist_entries"
}
