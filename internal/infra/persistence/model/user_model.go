// Package model holds the GORM structs that mirror the database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs are generated by the application.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name           string    `gorm:"type:varchar(100)"`
	Avatar         string    `gorm:"type:text"`
	PreferredDrink string    `gorm:"type:varchar(100)"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	Credits        int       `gorm:"not null;default:0;check:chk_users_credits,credits >= 0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Addresses []SavedAddressModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Cards     []SavedCardModel    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// SavedAddressModel mirrors the 'saved_addresses' table.
type SavedAddressModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Position  int       `gorm:"not null"`
	Label     string    `gorm:"type:varchar(50)"`
	FullName  string    `gorm:"type:varchar(100);not null"`
	Street    string    `gorm:"type:varchar(255);not null"`
	Apartment string    `gorm:"type:varchar(100)"`
	City      string    `gorm:"type:varchar(100);not null"`
	State     string    `gorm:"type:varchar(50);not null"`
	ZipCode   string    `gorm:"type:varchar(10);not null"`
	Phone     string    `gorm:"type:varchar(30)"`
	IsDefault bool      `gorm:"not null;default:false"`
}

// TableName explicitly sets the table name for GORM.
func (SavedAddressModel) TableName() string {
	return "saved_addresses"
}

// SavedCardModel mirrors the 'saved_cards' table. Only the last four digits are stored.
type SavedCardModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Position    int       `gorm:"not null"`
	Type        string    `gorm:"type:varchar(20);not null"`
	LastFour    string    `gorm:"type:char(4);not null"`
	HolderName  string    `gorm:"type:varchar(100)"`
	ExpiryMonth int       `gorm:"not null"`
	ExpiryYear  int       `gorm:"not null"`
	IsDefault   bool      `gorm:"not null;default:false"`
}

// TableName explicitly sets the table name for GORM.
func (SavedCardModel) TableName() string {
	return "saved_cards"
}
