// Package adapter holds outbound integrations. The webhook relay forwards
// accepted-change and conflict events to a configured downstream consumer
// (analytics, audit, a mobile push gateway) with the same best-effort
// contract as the live channel: delivery failures are logged and dropped,
// never surfaced to the sync path.
package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/utils"
	"github.com/edusync/statesync/models"
)

// event is the webhook payload envelope.
type event struct {
	Event     string    `json:"event"`
	TenantID  string    `json:"tenantId"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`

	Change   *models.ChangeNotification `json:"change,omitempty"`
	Conflict *models.SyncConflict       `json:"conflict,omitempty"`
}

// relayQueueSize bounds the number of events waiting for delivery. A slow
// or dead downstream costs dropped events, never a stalled push.
const relayQueueSize = 256

// WebhookRelay posts sync events to one downstream endpoint. Events are
// handed to a single delivery goroutine through a bounded queue, so the
// notify calls return immediately.
type WebhookRelay struct {
	client *utils.HTTPClient
	queue  chan event
	logger *logger.Logger
}

// NewWebhookRelay constructs a relay for the configured endpoint. It
// normalises and validates the URL from cfg.WebhookURL and configures the
// underlying HTTP client with the resolved endpoint and request timeout.
//
// Returns an error if cfg.WebhookURL is empty or cannot be parsed as a
// valid URL.
func NewWebhookRelay(cfg config.Adapter, logger *logger.Logger) (*WebhookRelay, error) {
	endpoint, err := normalizeWebhookURL(cfg.WebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(endpoint).
		SetTimeout(cfg.RequestTimeout)

	r := &WebhookRelay{
		client: client,
		queue:  make(chan event, relayQueueSize),
		logger: logger,
	}
	go r.run()

	return r, nil
}

func normalizeWebhookURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty url")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("url must include host and scheme")
	}

	return u.String(), nil
}

// NotifyChange queues a change event for downstream delivery. Best-effort:
// a full queue drops the event, delivery failures are logged and swallowed.
func (r *WebhookRelay) NotifyChange(_ context.Context, notification models.ChangeNotification) {
	r.publish(event{
		Event:     "change.accepted",
		TenantID:  notification.TenantID,
		UserID:    notification.UserID,
		Timestamp: time.Now().UTC(),
		Change:    &notification,
	})
}

// NotifyConflict queues a conflict event for downstream delivery, with the
// same best-effort contract as NotifyChange.
func (r *WebhookRelay) NotifyConflict(_ context.Context, conflict models.SyncConflict) {
	r.publish(event{
		Event:     "conflict.detected",
		TenantID:  conflict.TenantID,
		UserID:    conflict.UserID,
		Timestamp: time.Now().UTC(),
		Conflict:  &conflict,
	})
}

// publish offers an event to the delivery queue without blocking.
func (r *WebhookRelay) publish(e event) {
	select {
	case r.queue <- e:
	default:
		r.logger.Warn().
			Str("event", e.Event).
			Msg("webhook queue full, event dropped")
	}
}

// run drains the queue for the lifetime of the process. Deliveries are
// bounded by the client's request timeout, not by the caller's context:
// the push that produced the event has usually finished by now.
func (r *WebhookRelay) run() {
	for e := range r.queue {
		r.deliver(context.Background(), e)
	}
}

func (r *WebhookRelay) deliver(ctx context.Context, e event) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(e).
		Post("")
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("event", e.Event).
			Msg("webhook delivery failed")
		return
	}
	if resp.IsError() {
		r.logger.Warn().
			Int("status", resp.StatusCode()).
			Str("event", e.Event).
			Msg("webhook endpoint returned error status")
	}
}
