// Package live implements the best-effort WebSocket fan-out channel: a
// registry of connected device sessions and the broadcast path that tells
// a user's other devices that something changed. The channel is purely an
// optimization over polling — every notification is recoverable through a
// regular pull, so dropped frames and dead sessions are never an error.
package live

import (
	"context"
	"net/http"
	"sync"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/models"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// cross-origin apps are expected; auth happens via the bearer token
	CheckOrigin: func(*http.Request) bool { return true },
}

// Hub is the registry of live sessions, keyed by user and device. It
// implements the notifier contract of the service layer: broadcasts are
// non-blocking and scoped to the originating user's other devices.
type Hub struct {
	config config.Live
	logger *logger.Logger

	mu       sync.RWMutex
	sessions map[string]map[string]*session
}

// NewHub constructs an empty session registry.
func NewHub(cfg config.Live, logger *logger.Logger) *Hub {
	return &Hub{
		config:   cfg,
		logger:   logger,
		sessions: make(map[string]map[string]*session),
	}
}

func userKey(tenantID, userID string) string {
	return tenantID + ":" + userID
}

// HandleConnection upgrades an authenticated HTTP request to a live
// session and runs its pumps. A reconnect from the same device replaces
// the previous session.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request, auth models.AuthContext) {
	log := logger.FromRequest(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "Hub.HandleConnection").Msg("websocket upgrade failed")
		return
	}

	s := &session{
		hub:      h,
		conn:     conn,
		userKey:  userKey(auth.TenantID, auth.UserID),
		deviceID: auth.DeviceID,
		send:     make(chan Frame, h.config.SendBufferSize),
		done:     make(chan struct{}),
		logger:   h.logger,
	}

	h.register(s)

	log.Info().
		Str("device_id", auth.DeviceID).
		Msg("live session opened")

	go s.writePump(h.config.HeartbeatInterval)
	s.readPump(h.config.ClientTimeout)

	log.Info().
		Str("device_id", auth.DeviceID).
		Msg("live session closed")
}

func (h *Hub) register(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	devices, ok := h.sessions[s.userKey]
	if !ok {
		devices = make(map[string]*session)
		h.sessions[s.userKey] = devices
	}

	if previous, ok := devices[s.deviceID]; ok {
		previous.close()
	}
	devices[s.deviceID] = s
}

func (h *Hub) unregister(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	devices, ok := h.sessions[s.userKey]
	if !ok {
		return
	}
	// a reconnect may have replaced this session already
	if devices[s.deviceID] == s {
		delete(devices, s.deviceID)
	}
	if len(devices) == 0 {
		delete(h.sessions, s.userKey)
	}
}

// NotifyChange fans a change notification out to the user's other devices.
// The originating device is suppressed: it already knows what it pushed.
func (h *Hub) NotifyChange(_ context.Context, notification models.ChangeNotification) {
	frame := Frame{Type: FrameChangeNotification, Change: &notification}
	h.broadcast(notification.TenantID, notification.UserID, notification.DeviceID, notification.EntityType, frame)
}

// NotifyConflict tells every device of the user, including the one whose
// push was rejected, that a conflict awaits resolution.
func (h *Hub) NotifyConflict(_ context.Context, conflict models.SyncConflict) {
	frame := Frame{Type: FrameConflictNotification, Conflict: &ConflictNotice{
		ConflictID:          conflict.ID,
		EntityType:          conflict.EntityType,
		EntityID:            conflict.EntityID,
		SuggestedResolution: conflict.SuggestedResolution,
	}}
	h.broadcast(conflict.TenantID, conflict.UserID, "", conflict.EntityType, frame)
}

// broadcast enqueues a frame for every matching session of one user,
// skipping the excluded device. Full buffers drop the frame.
func (h *Hub) broadcast(tenantID, userID, excludeDevice string, entityType models.EntityType, frame Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for deviceID, s := range h.sessions[userKey(tenantID, userID)] {
		if excludeDevice != "" && deviceID == excludeDevice {
			continue
		}
		if !s.wants(entityType) {
			continue
		}
		s.enqueue(frame)
	}
}

// SessionCount reports the number of open sessions across all users.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, devices := range h.sessions {
		count += len(devices)
	}
	return count
}

// Shutdown closes every open session.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for key, devices := range h.sessions {
		for _, s := range devices {
			s.close()
		}
		delete(h.sessions, key)
	}
}
