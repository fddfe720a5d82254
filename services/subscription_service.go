package services

import (
	"errors"
	"time"

	"github.com/nishihata/food-saver/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionService stores web-push subscriptions, one per user. The
// user_id column carries a uniqueness constraint and upserts resolve
// conflicts by replacing the stored payload.
type SubscriptionService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSubscriptionService(db *gorm.DB, log *zap.Logger) *SubscriptionService {
	return &SubscriptionService{db: db, log: log}
}

// UpsertSubscription creates or replaces the user's subscription row.
func (s *SubscriptionService) UpsertSubscription(userID uuid.UUID, subscription string) error {
	sub := models.PushSubscription{
		UserID:       userID,
		Subscription: subscription,
		UpdatedAt:    time.Now(),
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"subscription", "updated_at"}),
	}).Create(&sub).Error
	if err != nil {
		return err
	}

	s.log.Info("push subscription saved", zap.String("user_id", userID.String()))
	return nil
}

// GetSubscription returns the user's subscription, or (nil, nil) when the
// user never opted in.
func (s *SubscriptionService) GetSubscription(userID uuid.UUID) (*models.PushSubscription, error) {
	var sub models.PushSubscription
	err := s.db.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
