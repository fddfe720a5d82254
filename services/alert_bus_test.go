package services

import (
	"testing"

	"github.com/nishihata/food-saver/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEmitExpiryAlertPersistsRow(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Alert{}))

	// No hub and no device transport wired; the alert row must still land.
	bus := NewAlertBus(db, nil, nil, zap.NewNop())
	user := uuid.New()

	bus.EmitExpiryAlert(user, PushPayload{
		Title: "Expiration notice",
		Body:  "Expiring today:\n- Milk",
		URL:   "/",
	})

	var alerts []models.Alert
	require.NoError(t, db.Where("user_id = ?", user).Find(&alerts).Error)
	require.Len(t, alerts, 1)
	assert.Equal(t, "expiring", alerts[0].Type)
	assert.Contains(t, alerts[0].Message, "- Milk")
}

func TestEmitExpiryAlertSurvivesPersistFailure(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// Alert table never migrated, so the insert fails; the emit must not
	// panic or abort the caller.
	bus := NewAlertBus(db, nil, nil, zap.NewNop())

	bus.EmitExpiryAlert(uuid.New(), PushPayload{Title: "t", Body: "b", URL: "/"})
}
