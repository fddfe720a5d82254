package services

import (
	"time"

	"github.com/nishihata/food-saver/models"
)

// DueSoonDays is the look-ahead window for the "due_soon" tier and the
// sweep's range query.
const DueSoonDays = 3

// truncateToDay drops the time-of-day and timezone components so two
// timestamps on the same calendar day always compare equal.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClassifyUrgency maps an expiration date to its urgency tier relative to
// today. Both inputs are truncated to calendar-day granularity first, so
// the result never depends on the time of day either was observed.
func ClassifyUrgency(today, expiration time.Time) models.UrgencyTier {
	diff := int(truncateToDay(expiration).Sub(truncateToDay(today)).Hours() / 24)

	switch {
	case diff < 0:
		return models.TierExpired
	case diff == 0:
		return models.TierDueToday
	case diff <= DueSoonDays:
		return models.TierDueSoon
	default:
		return models.TierSafe
	}
}
