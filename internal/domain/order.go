package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhavlik/venceflor/internal/money"
)

type OrderStatus string

const (
	OrderStatusReceived   OrderStatus = "received"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order is a captured checkout. Payment processing happens outside this
// service; orders enter as "received" and are advanced by the florist.
type Order struct {
	ID     uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Status OrderStatus `gorm:"type:varchar(30);index" json:"status"`
	Items  []OrderItem `json:"items"`

	Email  string `gorm:"size:140" json:"email"`
	Name   string `gorm:"size:140" json:"name"`
	Phone  string `gorm:"size:50" json:"phone"`
	Note   string `gorm:"type:text" json:"note"`
	Locale Locale `gorm:"size:5" json:"locale"`

	CustomerID *uuid.UUID  `gorm:"type:uuid;index" json:"customerId,omitempty"`
	Total      money.Money `gorm:"not null" json:"total"` // minor units

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItem freezes one cart line. Customizations is the verbatim selection
// snapshot taken when the line passed validation; it is never recomputed.
type OrderItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index" json:"-"`
	ProductID *uuid.UUID `gorm:"type:uuid;index" json:"productId,omitempty"`

	Slug           string          `gorm:"size:140" json:"slug"`
	Title          string          `gorm:"size:180" json:"title"` // Czech name at capture time
	Qty            int             `gorm:"not null" json:"qty"`
	UnitPrice      money.Money     `gorm:"not null" json:"unitPrice"` // minor units, incl. modifiers
	Customizations []Customization `gorm:"type:jsonb;serializer:json" json:"customizations"`
}
