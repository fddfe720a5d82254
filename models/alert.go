package models

import (
	"time"

	"github.com/google/uuid"
)

type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Type      string    `gorm:"size:20" json:"type"` // "expiring" | "info"
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
