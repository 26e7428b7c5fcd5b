package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRelay(t *testing.T, endpoint string) *WebhookRelay {
	t.Helper()
	relay, err := NewWebhookRelay(config.Adapter{
		WebhookURL:     endpoint,
		RequestTimeout: 2 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return relay
}

func TestNewWebhookRelay_InvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"no host", "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWebhookRelay(config.Adapter{WebhookURL: tt.url}, logger.Nop())
			assert.Error(t, err)
		})
	}
}

func TestNormalizeWebhookURL_AddsScheme(t *testing.T) {
	got, err := normalizeWebhookURL("hooks.example.com/sync")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/sync", got)
}

func TestNotifyChange_PostsEvent(t *testing.T) {
	received := make(chan event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var e event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&e))
		received <- e
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	relay := newTestRelay(t, srv.URL)
	relay.NotifyChange(context.Background(), models.ChangeNotification{
		TenantID:   "tenant-1",
		UserID:     "user-1",
		EntityType: models.EntityTypeProgress,
		EntityID:   "p-1",
		Operation:  models.OperationUpdate,
		Version:    4,
		DeviceID:   "device-a",
	})

	select {
	case e := <-received:
		assert.Equal(t, "change.accepted", e.Event)
		assert.Equal(t, "tenant-1", e.TenantID)
		assert.Equal(t, "user-1", e.UserID)
		require.NotNil(t, e.Change)
		assert.Equal(t, "p-1", e.Change.EntityID)
		assert.Equal(t, int64(4), e.Change.Version)
		assert.Nil(t, e.Conflict)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook endpoint was never called")
	}
}

func TestNotifyConflict_PostsEvent(t *testing.T) {
	received := make(chan event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var e event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&e))
		received <- e
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	relay := newTestRelay(t, srv.URL)
	relay.NotifyConflict(context.Background(), models.SyncConflict{
		ID:         "c-1",
		TenantID:   "tenant-1",
		UserID:     "user-1",
		EntityType: models.EntityTypeProgress,
		EntityID:   "p-1",
	})

	select {
	case e := <-received:
		assert.Equal(t, "conflict.detected", e.Event)
		require.NotNil(t, e.Conflict)
		assert.Equal(t, "c-1", e.Conflict.ID)
		assert.Nil(t, e.Change)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook endpoint was never called")
	}
}

func TestNotifyChange_DoesNotBlockOnSlowDownstream(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	relay := newTestRelay(t, srv.URL)

	// the first event parks the delivery worker on the stalled downstream;
	// the rest must still be accepted without waiting on it
	start := time.Now()
	for i := 0; i < 20; i++ {
		relay.NotifyChange(context.Background(), models.ChangeNotification{
			TenantID: "tenant-1",
			UserID:   "user-1",
			EntityID: "p-1",
		})
	}
	assert.Less(t, time.Since(start), time.Second,
		"notify must enqueue, not wait for delivery")
}

func TestPublish_FullQueueDropsEvent(t *testing.T) {
	relay := &WebhookRelay{
		queue:  make(chan event, 1),
		logger: logger.Nop(),
	}

	// no worker is draining; the second publish must drop, not block
	relay.publish(event{Event: "change.accepted"})
	relay.publish(event{Event: "change.accepted"})

	assert.Len(t, relay.queue, 1)
}

func TestDeliver_FailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	relay := newTestRelay(t, srv.URL)

	// error status must be logged, not returned or panicked on
	relay.NotifyChange(context.Background(), models.ChangeNotification{
		TenantID: "tenant-1",
		UserID:   "user-1",
	})

	// unreachable endpoint must be equally silent
	srv.Close()
	relay.NotifyConflict(context.Background(), models.SyncConflict{
		TenantID: "tenant-1",
		UserID:   "user-1",
	})
}
