package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nishihata/food-saver/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeItemStore struct {
	items []models.FoodItem
	err   error
	calls int
}

func (f *fakeItemStore) ListItemsInRange(start, end time.Time) ([]models.FoodItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.FoodItem
	for _, item := range f.items {
		d := truncateToDay(item.ExpirationDate)
		if !d.Before(start) && !d.After(end) {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeSubStore struct {
	subs  map[uuid.UUID]string
	calls int
}

func (f *fakeSubStore) GetSubscription(userID uuid.UUID) (*models.PushSubscription, error) {
	f.calls++
	payload, ok := f.subs[userID]
	if !ok {
		return nil, nil
	}
	return &models.PushSubscription{UserID: userID, Subscription: payload}, nil
}

type fakeSender struct {
	sent    []PushPayload
	sentTo  []uuid.UUID
	failFor map[uuid.UUID]error
}

func (f *fakeSender) Send(sub *models.PushSubscription, payload PushPayload) error {
	if err, ok := f.failFor[sub.UserID]; ok {
		return err
	}
	f.sent = append(f.sent, payload)
	f.sentTo = append(f.sentTo, sub.UserID)
	return nil
}

func item(userID uuid.UUID, name string, expiration time.Time) models.FoodItem {
	return models.FoodItem{UserID: userID, Name: name, ExpirationDate: expiration}
}

func newSweep(items *fakeItemStore, subs *fakeSubStore, sender *fakeSender) *SweepService {
	return NewSweepService(items, subs, sender, nil, zap.NewNop())
}

func TestSweepNoExpiringItems(t *testing.T) {
	today := date(2025, time.June, 10)
	store := &fakeItemStore{}
	sender := &fakeSender{}

	report, err := newSweep(store, &fakeSubStore{}, sender).RunDailySweep(today)
	if err != nil {
		t.Fatal(err)
	}
	if report.Message != "No expiring items" {
		t.Errorf("got message %q", report.Message)
	}
	if report.TotalItems != 0 || len(report.Notifications) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
	if len(sender.sent) != 0 {
		t.Error("nothing should have been sent")
	}
}

func TestSweepDueSoonItemsAreFetchedButNotNotified(t *testing.T) {
	today := date(2025, time.June, 10)
	user := uuid.New()

	store := &fakeItemStore{items: []models.FoodItem{
		item(user, "Cheese", date(2025, time.June, 12)), // 2 days out
	}}
	subs := &fakeSubStore{subs: map[uuid.UUID]string{user: "{}"}}
	sender := &fakeSender{}

	report, err := newSweep(store, subs, sender).RunDailySweep(today)
	if err != nil {
		t.Fatal(err)
	}
	// The item is inside the fetch window...
	if report.TotalItems != 1 {
		t.Errorf("totalItems = %d, want 1", report.TotalItems)
	}
	// ...but only same-day items trigger a notification.
	if len(report.Notifications) != 0 {
		t.Errorf("expected no notifications, got %+v", report.Notifications)
	}
	if len(sender.sent) != 0 {
		t.Error("nothing should have been sent")
	}
}

func TestSweepNotifiesDueTodayItems(t *testing.T) {
	today := date(2025, time.June, 10)
	user := uuid.New()

	store := &fakeItemStore{items: []models.FoodItem{
		item(user, "Milk", today),
		item(user, "Eggs", today),
		item(user, "Butter", date(2025, time.June, 12)),
	}}
	subs := &fakeSubStore{subs: map[uuid.UUID]string{user: "{}"}}
	sender := &fakeSender{}

	report, err := newSweep(store, subs, sender).RunDailySweep(today)
	if err != nil {
		t.Fatal(err)
	}

	if report.TotalItems != 3 {
		t.Errorf("totalItems = %d, want 3", report.TotalItems)
	}
	if len(report.Notifications) != 1 {
		t.Fatalf("expected 1 notification entry, got %+v", report.Notifications)
	}
	n := report.Notifications[0]
	if n.UserID != user || !n.Success || n.ItemCount != 2 {
		t.Errorf("unexpected entry %+v", n)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(sender.sent))
	}
	body := sender.sent[0].Body
	if !strings.Contains(body, "- Milk") || !strings.Contains(body, "- Eggs") {
		t.Errorf("body missing item lines:\n%s", body)
	}
	if strings.Contains(body, "Butter") {
		t.Errorf("due-soon item leaked into body:\n%s", body)
	}
	lines := strings.Split(body, "\n")
	if len(lines) != 3 { // header + two items
		t.Errorf("expected 3 lines, got %q", lines)
	}
}

func TestSweepSkipsUsersWithoutSubscription(t *testing.T) {
	today := date(2025, time.June, 10)
	optedIn := uuid.New()
	notOptedIn := uuid.New()

	store := &fakeItemStore{items: []models.FoodItem{
		item(optedIn, "Milk", today),
		item(notOptedIn, "Yogurt", today),
	}}
	subs := &fakeSubStore{subs: map[uuid.UUID]string{optedIn: "{}"}}
	sender := &fakeSender{}

	report, err := newSweep(store, subs, sender).RunDailySweep(today)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Notifications) != 1 {
		t.Fatalf("expected 1 entry, got %+v", report.Notifications)
	}
	if report.Notifications[0].UserID != optedIn {
		t.Errorf("wrong user in report: %+v", report.Notifications[0])
	}
	for _, to := range sender.sentTo {
		if to == notOptedIn {
			t.Error("delivered to a user without a subscription")
		}
	}
}

func TestSweepDeliveryFailureIsPerUser(t *testing.T) {
	today := date(2025, time.June, 10)
	failing := uuid.New()
	healthy := uuid.New()

	store := &fakeItemStore{items: []models.FoodItem{
		item(failing, "Milk", today),
		item(healthy, "Eggs", today),
	}}
	subs := &fakeSubStore{subs: map[uuid.UUID]string{failing: "{}", healthy: "{}"}}
	sender := &fakeSender{failFor: map[uuid.UUID]error{failing: errors.New("endpoint gone")}}

	report, err := newSweep(store, subs, sender).RunDailySweep(today)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Notifications) != 2 {
		t.Fatalf("expected 2 entries, got %+v", report.Notifications)
	}

	byUser := make(map[uuid.UUID]NotificationResult)
	for _, n := range report.Notifications {
		byUser[n.UserID] = n
	}
	if n := byUser[failing]; n.Success || n.Error != "endpoint gone" {
		t.Errorf("failing user entry: %+v", n)
	}
	if n := byUser[healthy]; !n.Success || n.Error != "" {
		t.Errorf("healthy user entry: %+v", n)
	}
}

func TestSweepStoreErrorAbortsSweep(t *testing.T) {
	store := &fakeItemStore{err: errors.New("connection refused")}
	sender := &fakeSender{}

	report, err := newSweep(store, &fakeSubStore{}, sender).RunDailySweep(date(2025, time.June, 10))
	if err == nil {
		t.Fatal("expected an error")
	}
	if report != nil {
		t.Errorf("no partial report expected, got %+v", report)
	}
	if len(sender.sent) != 0 {
		t.Error("nothing should have been sent")
	}
}

func TestSweepWindowBounds(t *testing.T) {
	today := date(2025, time.June, 10)
	user := uuid.New()

	store := &fakeItemStore{items: []models.FoodItem{
		item(user, "Expired", date(2025, time.June, 9)),   // behind the window
		item(user, "Edge", date(2025, time.June, 13)),     // inclusive end
		item(user, "Too far", date(2025, time.June, 14)),  // beyond the window
		item(user, "Today", today),
	}}
	subs := &fakeSubStore{subs: map[uuid.UUID]string{user: "{}"}}

	report, err := newSweep(store, subs, &fakeSender{}).RunDailySweep(today)
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalItems != 2 { // "Edge" and "Today"
		t.Errorf("totalItems = %d, want 2", report.TotalItems)
	}
	if report.Notifications[0].ItemCount != 1 {
		t.Errorf("itemCount = %d, want 1", report.Notifications[0].ItemCount)
	}
}
