package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLiveConfig() config.Live {
	return config.Live{
		HeartbeatInterval: config.DefaultHeartbeatInterval,
		ClientTimeout:     config.DefaultClientTimeout,
		SendBufferSize:    4,
	}
}

func newTestHub() *Hub {
	return NewHub(testLiveConfig(), logger.Nop())
}

// addSession registers a session without a network connection. Broadcast
// and shutdown paths only touch the send and done channels, so a nil conn
// is safe here.
func addSession(h *Hub, tenantID, userID, deviceID string, buffer int) *session {
	s := &session{
		hub:      h,
		userKey:  userKey(tenantID, userID),
		deviceID: deviceID,
		send:     make(chan Frame, buffer),
		done:     make(chan struct{}),
		logger:   h.logger,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	devices, ok := h.sessions[s.userKey]
	if !ok {
		devices = make(map[string]*session)
		h.sessions[s.userKey] = devices
	}
	devices[deviceID] = s
	return s
}

func TestNotifyChange_SuppressesOriginatingDevice(t *testing.T) {
	h := newTestHub()
	origin := addSession(h, "tenant-1", "user-1", "device-a", 4)
	other := addSession(h, "tenant-1", "user-1", "device-b", 4)
	stranger := addSession(h, "tenant-1", "user-2", "device-c", 4)

	h.NotifyChange(context.Background(), models.ChangeNotification{
		TenantID:   "tenant-1",
		UserID:     "user-1",
		EntityType: models.EntityTypeProgress,
		EntityID:   "p-1",
		Operation:  models.OperationUpdate,
		Version:    8,
		DeviceID:   "device-a",
	})

	require.Len(t, other.send, 1)
	frame := <-other.send
	assert.Equal(t, FrameChangeNotification, frame.Type)
	require.NotNil(t, frame.Change)
	assert.Equal(t, int64(8), frame.Change.Version)

	assert.Empty(t, origin.send, "originating device must not be notified")
	assert.Empty(t, stranger.send, "other users must not be notified")
}

func TestNotifyConflict_ReachesEveryDevice(t *testing.T) {
	h := newTestHub()
	origin := addSession(h, "tenant-1", "user-1", "device-a", 4)
	other := addSession(h, "tenant-1", "user-1", "device-b", 4)

	h.NotifyConflict(context.Background(), models.SyncConflict{
		ID:                  "c-1",
		TenantID:            "tenant-1",
		UserID:              "user-1",
		EntityType:          models.EntityTypeProgress,
		EntityID:            "p-1",
		ClientDeviceID:      "device-a",
		SuggestedResolution: models.ResolutionLastWriteWins,
	})

	// conflicts go to the originator too: its push was just rejected
	require.Len(t, origin.send, 1)
	require.Len(t, other.send, 1)

	frame := <-origin.send
	assert.Equal(t, FrameConflictNotification, frame.Type)
	require.NotNil(t, frame.Conflict)
	assert.Equal(t, "c-1", frame.Conflict.ConflictID)
	assert.Equal(t, models.ResolutionLastWriteWins, frame.Conflict.SuggestedResolution)
}

func TestBroadcast_RespectsSubscriptionFilter(t *testing.T) {
	h := newTestHub()
	s := addSession(h, "tenant-1", "user-1", "device-b", 4)
	s.setFilters([]models.EntityType{models.EntityTypeNote})

	h.NotifyChange(context.Background(), models.ChangeNotification{
		TenantID:   "tenant-1",
		UserID:     "user-1",
		EntityType: models.EntityTypeProgress,
		DeviceID:   "device-a",
	})
	assert.Empty(t, s.send, "filtered-out entity type must not be delivered")

	h.NotifyChange(context.Background(), models.ChangeNotification{
		TenantID:   "tenant-1",
		UserID:     "user-1",
		EntityType: models.EntityTypeNote,
		DeviceID:   "device-a",
	})
	assert.Len(t, s.send, 1)

	// unsubscribe restores the match-everything default
	s.setFilters(nil)
	h.NotifyChange(context.Background(), models.ChangeNotification{
		TenantID:   "tenant-1",
		UserID:     "user-1",
		EntityType: models.EntityTypeProgress,
		DeviceID:   "device-a",
	})
	assert.Len(t, s.send, 2)
}

func TestBroadcast_FullBufferDropsFrame(t *testing.T) {
	h := newTestHub()
	s := addSession(h, "tenant-1", "user-1", "device-b", 1)

	notification := models.ChangeNotification{
		TenantID:   "tenant-1",
		UserID:     "user-1",
		EntityType: models.EntityTypeProgress,
		DeviceID:   "device-a",
	}
	h.NotifyChange(context.Background(), notification)
	h.NotifyChange(context.Background(), notification)

	assert.Len(t, s.send, 1, "second frame must be dropped, not block")
}

func TestRegister_ReplacedSessionSurvivesLateEnqueue(t *testing.T) {
	h := newTestHub()
	old := addSession(h, "tenant-1", "user-1", "device-a", 4)

	// a reconnect from the same device evicts the old session
	replacement := &session{
		hub:      h,
		userKey:  userKey("tenant-1", "user-1"),
		deviceID: "device-a",
		send:     make(chan Frame, 4),
		done:     make(chan struct{}),
		logger:   h.logger,
	}
	h.register(replacement)

	// the old read side may still be answering an inbound frame; this must
	// drop silently, never panic
	old.handleFrame(Frame{Type: FramePing})
	assert.Empty(t, old.send)

	assert.Equal(t, 1, h.SessionCount())

	h.NotifyChange(context.Background(), models.ChangeNotification{
		TenantID:   "tenant-1",
		UserID:     "user-1",
		EntityType: models.EntityTypeProgress,
		DeviceID:   "device-b",
	})
	assert.Len(t, replacement.send, 1)
}

func TestSessionCount(t *testing.T) {
	h := newTestHub()
	assert.Equal(t, 0, h.SessionCount())

	addSession(h, "tenant-1", "user-1", "device-a", 1)
	addSession(h, "tenant-1", "user-1", "device-b", 1)
	addSession(h, "tenant-1", "user-2", "device-c", 1)

	assert.Equal(t, 3, h.SessionCount())
}

func TestHub_EndToEnd(t *testing.T) {
	h := newTestHub()

	auth := models.AuthContext{TenantID: "tenant-1", UserID: "user-1", DeviceID: "device-b"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.HandleConnection(w, r, auth)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// wait for the session to register before broadcasting
	require.Eventually(t, func() bool { return h.SessionCount() == 1 },
		time.Second, 10*time.Millisecond)

	h.NotifyChange(context.Background(), models.ChangeNotification{
		TenantID:   "tenant-1",
		UserID:     "user-1",
		EntityType: models.EntityTypeProgress,
		EntityID:   "p-1",
		Operation:  models.OperationUpdate,
		Version:    3,
		DeviceID:   "device-a",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame Frame
	require.NoError(t, conn.ReadJSON(&frame))

	assert.Equal(t, FrameChangeNotification, frame.Type)
	require.NotNil(t, frame.Change)
	assert.Equal(t, "p-1", frame.Change.EntityID)

	// a ping frame gets a pong back
	require.NoError(t, conn.WriteJSON(Frame{Type: FramePing}))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, FramePong, frame.Type)

	conn.Close()
	require.Eventually(t, func() bool { return h.SessionCount() == 0 },
		time.Second, 10*time.Millisecond)
}
