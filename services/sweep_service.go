package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/nishihata/food-saver/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sweepTitle      = "[Food Saver] Expiration notice"
	sweepBodyHeader = "Expiring today:"
	sweepURL        = "/"
)

// ItemRangeStore is the slice of the record store the sweep needs.
type ItemRangeStore interface {
	ListItemsInRange(start, end time.Time) ([]models.FoodItem, error)
}

// SubscriptionStore looks up a user's push subscription; (nil, nil) means
// the user never opted in.
type SubscriptionStore interface {
	GetSubscription(userID uuid.UUID) (*models.PushSubscription, error)
}

// NotificationResult is one user's outcome within a sweep.
type NotificationResult struct {
	UserID    uuid.UUID `json:"userId"`
	ItemCount int       `json:"itemCount"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// SweepReport is the aggregate outcome of one sweep invocation.
type SweepReport struct {
	Message       string               `json:"message"`
	TotalItems    int                  `json:"totalItems"`
	Notifications []NotificationResult `json:"notifications"`
}

// SweepService is the notification dispatcher: one invocation scans the
// expiration window and pushes a same-day notice to each opted-in owner.
type SweepService struct {
	items  ItemRangeStore
	subs   SubscriptionStore
	sender PushSender
	alerts *AlertBus // optional side channel
	log    *zap.Logger
}

func NewSweepService(items ItemRangeStore, subs SubscriptionStore, sender PushSender, alerts *AlertBus, log *zap.Logger) *SweepService {
	return &SweepService{items: items, subs: subs, sender: sender, alerts: alerts, log: log}
}

// RunDailySweep queries items expiring in [today, today+3], groups them by
// owner and notifies, today only, the owners of items expiring exactly
// today. A store failure aborts the sweep; a per-user delivery failure is
// recorded and the sweep moves on. Best-effort by contract: a failed
// delivery is only retried implicitly, by the next day's sweep
// re-evaluating the same condition.
func (s *SweepService) RunDailySweep(today time.Time) (*SweepReport, error) {
	windowStart := truncateToDay(today)
	windowEnd := windowStart.AddDate(0, 0, DueSoonDays)

	// The query fetches the whole due-soon window even though only
	// same-day items trigger a push; the wide total is reported as-is.
	expiring, err := s.items.ListItemsInRange(windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("expiring items query failed: %w", err)
	}

	if len(expiring) == 0 {
		return &SweepReport{Message: "No expiring items", Notifications: []NotificationResult{}}, nil
	}

	// Group by owner, keeping first-seen user order so runs are
	// deterministic. Items stay expiration-ascending within a group.
	userOrder := make([]uuid.UUID, 0)
	userItems := make(map[uuid.UUID][]models.FoodItem)
	for _, item := range expiring {
		if _, seen := userItems[item.UserID]; !seen {
			userOrder = append(userOrder, item.UserID)
		}
		userItems[item.UserID] = append(userItems[item.UserID], item)
	}

	report := &SweepReport{
		Message:       "Notifications sent",
		TotalItems:    len(expiring),
		Notifications: []NotificationResult{},
	}

	for _, userID := range userOrder {
		sub, err := s.subs.GetSubscription(userID)
		if err != nil {
			return nil, fmt.Errorf("subscription lookup failed: %w", err)
		}
		if sub == nil {
			// Not opted in; expected, not an error.
			s.log.Debug("no subscription", zap.String("user_id", userID.String()))
			continue
		}

		var dueToday []models.FoodItem
		for _, item := range userItems[userID] {
			if truncateToDay(item.ExpirationDate).Equal(windowStart) {
				dueToday = append(dueToday, item)
			}
		}
		if len(dueToday) == 0 {
			continue
		}

		payload := PushPayload{
			Title: sweepTitle,
			Body:  renderSweepBody(dueToday),
			URL:   sweepURL,
		}

		result := NotificationResult{UserID: userID, ItemCount: len(dueToday)}
		if err := s.sender.Send(sub, payload); err != nil {
			s.log.Warn("push delivery failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			result.Error = err.Error()
		} else {
			result.Success = true
			if s.alerts != nil {
				s.alerts.EmitExpiryAlert(userID, payload)
			}
		}
		report.Notifications = append(report.Notifications, result)
	}

	s.log.Info("sweep finished",
		zap.Int("total_items", report.TotalItems),
		zap.Int("notified_users", len(report.Notifications)))
	return report, nil
}

func renderSweepBody(items []models.FoodItem) string {
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, sweepBodyHeader)
	for _, item := range items {
		lines = append(lines, "- "+item.Name)
	}
	return strings.Join(lines, "\n")
}
