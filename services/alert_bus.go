package services

import (
	"time"

	"github.com/nishihata/food-saver/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AlertBus persists an alert row and mirrors it to the user's side
// channels: live websocket connections and enabled mobile devices. Web
// push stays the dispatcher's job; these are extras on top of it.
type AlertBus struct {
	db      *gorm.DB
	hub     *RealtimeHub
	devices *DevicePushService
	log     *zap.Logger
}

func NewAlertBus(db *gorm.DB, hub *RealtimeHub, devices *DevicePushService, log *zap.Logger) *AlertBus {
	return &AlertBus{db: db, hub: hub, devices: devices, log: log}
}

func (b *AlertBus) EmitExpiryAlert(userID uuid.UUID, payload PushPayload) {
	a := &models.Alert{
		UserID:    userID,
		Type:      "expiring",
		Message:   payload.Body,
		CreatedAt: time.Now(),
	}
	if err := b.db.Create(a).Error; err != nil {
		// Best-effort side channel; the push already went out.
		b.log.Warn("alert persist failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	if b.hub != nil {
		b.hub.BroadcastAlert(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if b.devices != nil {
		b.devices.PushToUser(userID, payload)
	}
}
