package models

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription holds a browser's web-push subscription as the opaque
// JSON the Push API hands out (endpoint plus p256dh/auth keys). At most one
// row per user; enabling notifications again replaces the old one.
type PushSubscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Subscription string    `gorm:"type:text;not null" json:"subscription"`
	UpdatedAt    time.Time `json:"updated_at"`
}
