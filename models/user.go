package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an anonymous session owner. There are no credentials; a row is
// created when a client opens its first session and the id travels in the
// session token from then on.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
