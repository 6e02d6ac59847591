// Package worker runs background consumers for domain events.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"turfbook/internal/events"

	"github.com/rs/zerolog"
)

// Sender delivers one rendered notification.
type Sender interface {
	Send(ctx context.Context, eventType string, payload []byte) error
}

// WebhookSender posts event payloads as JSON to a configured URL.
type WebhookSender struct {
	url    string
	client *http.Client
}

func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *WebhookSender) Send(ctx context.Context, eventType string, payload []byte) error {
	body := map[string]json.RawMessage{
		"event": json.RawMessage(fmt.Sprintf("%q", eventType)),
		"data":  json.RawMessage(payload),
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

type task struct {
	eventType string
	payload   []byte
}

// Notifier consumes booking and slot events from the bus and hands
// them to a Sender with retries. Events are buffered in a bounded
// queue; when it is full the newest event is dropped so publishers
// never block on a slow webhook.
type Notifier struct {
	sender Sender
	retry  RetryPolicy
	queue  chan task
	logger *zerolog.Logger
}

func NewNotifier(sender Sender, retry RetryPolicy, queueSize int, logger *zerolog.Logger) *Notifier {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 3
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = time.Minute
	}
	if queueSize <= 0 {
		queueSize = 128
	}

	return &Notifier{
		sender: sender,
		retry:  retry,
		queue:  make(chan task, queueSize),
		logger: logger,
	}
}

// SubscribeTo registers the notifier on the bus for the event types it
// delivers.
func (n *Notifier) SubscribeTo(bus *events.EventBus) {
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingCancelled,
		events.EventSlotPublished,
	} {
		bus.Subscribe(eventType, n.handleEvent)
	}
}

func (n *Notifier) handleEvent(event *events.Event) error {
	select {
	case n.queue <- task{eventType: event.Type, payload: event.Payload}:
		return nil
	default:
		n.logger.Warn().Str("event", event.Type).Msg("notification queue full, event dropped")
		return fmt.Errorf("notification queue full")
	}
}

// Run drains the queue until ctx is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	n.logger.Info().Msg("notification worker started")
	for {
		select {
		case <-ctx.Done():
			n.logger.Info().Msg("notification worker stopped")
			return
		case t := <-n.queue:
			n.deliver(ctx, t)
		}
	}
}

func (n *Notifier) deliver(ctx context.Context, t task) {
	var err error
	for attempt := 1; attempt <= n.retry.MaxRetries; attempt++ {
		err = n.sender.Send(ctx, t.eventType, t.payload)
		if err == nil {
			n.logger.Debug().Str("event", t.eventType).Int("attempt", attempt).Msg("notification delivered")
			return
		}
		if ctx.Err() != nil {
			return
		}
		if attempt < n.retry.MaxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(n.retry.NextDelay(attempt)):
			}
		}
	}
	n.logger.Error().Err(err).Str("event", t.eventType).Int("attempts", n.retry.MaxRetries).Msg("notification delivery failed")
}
