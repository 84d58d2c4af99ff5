package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SessionID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID            *uuid.UUID      `gorm:"type:uuid;index"`
	Subtotal          decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Tax               decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	DeliveryFee       decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Discount          decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	CreditsDiscount   decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Total             decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	DiscountCode      string          `gorm:"type:varchar(50)"`
	CreditsEarned     int             `gorm:"not null;default:0"`
	CreditsUsed       int             `gorm:"not null;default:0"`
	Status            string          `gorm:"type:varchar(30);not null;index"`
	FulfillmentMethod string          `gorm:"type:varchar(20);not null"`
	IsGuestOrder      bool            `gorm:"not null;default:false"`
	EstimatedMinutes  int             `gorm:"not null;default:0"`
	DeliveryAddress   string          `gorm:"type:text"`
	VehicleInfo       string          `gorm:"type:varchar(255)"`
	PaymentReference  string          `gorm:"type:varchar(100)"`
	CreatedAt         time.Time       `gorm:"index"`
	UpdatedAt         time.Time

	Lines []OrderLineModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel mirrors the 'order_lines' table, the immutable cart snapshot of an order.
type OrderLineModel struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	Item      ItemSnapshot    `gorm:"type:text;serializer:json;not null"`
	Quantity  int             `gorm:"not null"`
	Size      string          `gorm:"type:varchar(1);not null"`
	Milk      string          `gorm:"type:varchar(20);not null"`
	Sweetness int             `gorm:"not null"`
	Ice       string          `gorm:"type:varchar(20);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	LineTotal decimal.Decimal `gorm:"type:numeric(20,8);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// NotificationModel mirrors the 'notifications' table.
type NotificationModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Read        bool      `gorm:"not null;default:false"`
	DedupeKey   *string   `gorm:"type:varchar(100);uniqueIndex"`
	CreatedAt   time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}

// All lists every model for schema migration, parents before children.
func All() []any {
	return []any{
		&UserModel{},
		&SavedAddressModel{},
		&SavedCardModel{},
		&SessionModel{},
		&CartLineModel{},
		&WishlistEntryModel{},
		&OrderModel{},
		&OrderLineModel{},
		&NotificationModel{},
	}
}
