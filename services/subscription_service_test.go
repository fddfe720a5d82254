package services

import (
	"testing"

	"github.com/nishihata/food-saver/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetSubscriptionAbsent(t *testing.T) {
	svc := NewSubscriptionService(setupTestDB(t), zap.NewNop())

	sub, err := svc.GetSubscription(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestUpsertSubscriptionReplacesExistingRow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSubscriptionService(db, zap.NewNop())
	user := uuid.New()

	require.NoError(t, svc.UpsertSubscription(user, `{"endpoint":"https://push.example/one"}`))
	require.NoError(t, svc.UpsertSubscription(user, `{"endpoint":"https://push.example/two"}`))

	sub, err := svc.GetSubscription(user)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Contains(t, sub.Subscription, "two")

	// Still exactly one row for the user.
	var count int64
	require.NoError(t, db.Model(&models.PushSubscription{}).Where("user_id = ?", user).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertSubscriptionPerUserIsolation(t *testing.T) {
	svc := NewSubscriptionService(setupTestDB(t), zap.NewNop())
	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, svc.UpsertSubscription(alice, `{"endpoint":"https://push.example/alice"}`))
	require.NoError(t, svc.UpsertSubscription(bob, `{"endpoint":"https://push.example/bob"}`))

	sub, err := svc.GetSubscription(alice)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Contains(t, sub.Subscription, "alice")
}
