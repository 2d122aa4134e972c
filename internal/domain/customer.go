package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:140;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:140" json:"name"`
	Phone     string    `gorm:"size:60" json:"phone"`
	Locale    Locale    `gorm:"size:5" json:"locale"`
	CreatedAt time.Time `json:"createdAt"`
}
