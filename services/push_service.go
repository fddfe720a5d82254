package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/nishihata/food-saver/models"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// PushPayload is the message shape delivered to the push transport. The
// service worker on the other end reads exactly these three fields.
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// PushSender delivers one payload to one stored subscription. Neither the
// dispatcher nor the controllers care which transport sits behind it.
type PushSender interface {
	Send(sub *models.PushSubscription, payload PushPayload) error
}

// WebPushSender sends browser push notifications signed with the VAPID key
// pair. Keys are read from the environment at send time, so a missing key
// surfaces as a delivery error rather than a boot failure.
type WebPushSender struct{}

func NewWebPushSender() *WebPushSender {
	return &WebPushSender{}
}

func (w *WebPushSender) Send(sub *models.PushSubscription, payload PushPayload) error {
	pub := os.Getenv("VAPID_PUBLIC_KEY")
	priv := os.Getenv("VAPID_PRIVATE_KEY")
	if pub == "" || priv == "" {
		return errors.New("VAPID keys not configured")
	}

	var target webpush.Subscription
	if err := json.Unmarshal([]byte(sub.Subscription), &target); err != nil {
		return fmt.Errorf("invalid stored subscription: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotification(body, &target, &webpush.Options{
		Subscriber:      os.Getenv("VAPID_EMAIL"),
		VAPIDPublicKey:  pub,
		VAPIDPrivateKey: priv,
		TTL:             3600,
	})
	if err != nil {
		return fmt.Errorf("web push send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}
