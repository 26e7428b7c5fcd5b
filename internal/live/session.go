package live

import (
	"sync"
	"time"

	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/models"
	"github.com/gorilla/websocket"
)

// writeWait bounds a single outbound frame write.
const writeWait = 10 * time.Second

// session is one live WebSocket connection of one device. Outbound frames
// flow through the bounded send channel; the hub never writes to the
// connection directly.
type session struct {
	hub      *Hub
	conn     *websocket.Conn
	userKey  string
	deviceID string
	send     chan Frame
	// done signals shutdown; send is never closed, so a racing enqueue
	// from the read side can never hit a closed channel.
	done   chan struct{}
	logger *logger.Logger

	mu sync.Mutex
	// filters holds the subscribed entity types; nil means all types.
	filters map[models.EntityType]struct{}

	closeOnce sync.Once
}

// wants reports whether the session's subscription covers an entity type.
func (s *session) wants(entityType models.EntityType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filters == nil {
		return true
	}
	_, ok := s.filters[entityType]
	return ok
}

// enqueue offers a frame to the session without blocking. Frames for a
// closed session and frames that find the send buffer full are dropped;
// the device recovers the missed update on its next pull.
func (s *session) enqueue(frame Frame) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.send <- frame:
	default:
		s.logger.Warn().
			Str("device_id", s.deviceID).
			Str("frame_type", string(frame.Type)).
			Msg("live session buffer full, frame dropped")
	}
}

// close tears the session down exactly once. Shutdown is signalled through
// done rather than by closing send: the replaced connection's read side may
// still be enqueueing a reply when a reconnect evicts it.
func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.conn != nil {
			s.conn.Close()
		}
	})
}

// readPump consumes inbound frames until the connection dies. A session
// that stays silent past the client timeout (no frames, no pongs) is
// evicted.
func (s *session) readPump(clientTimeout time.Duration) {
	defer func() {
		s.hub.unregister(s)
		s.close()
	}()

	s.conn.SetReadDeadline(time.Now().Add(clientTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(clientTimeout))
	})

	for {
		var frame Frame
		if err := s.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn().
					Str("device_id", s.deviceID).
					Err(err).
					Msg("live session closed unexpectedly")
			}
			return
		}

		s.conn.SetReadDeadline(time.Now().Add(clientTimeout))
		s.handleFrame(frame)
	}
}

func (s *session) handleFrame(frame Frame) {
	switch frame.Type {
	case FrameSubscribe:
		s.setFilters(frame.EntityTypes)
		now := time.Now().UTC()
		s.enqueue(Frame{Type: FrameSyncComplete, ServerTimestamp: &now})

	case FrameUnsubscribe:
		s.setFilters(nil)

	case FramePing:
		now := time.Now().UTC()
		s.enqueue(Frame{Type: FramePong, ServerTimestamp: &now})

	default:
		s.enqueue(Frame{Type: FrameError, Error: "unknown frame type: " + string(frame.Type)})
	}
}

func (s *session) setFilters(entityTypes []models.EntityType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(entityTypes) == 0 {
		s.filters = nil
		return
	}

	s.filters = make(map[models.EntityType]struct{}, len(entityTypes))
	for _, t := range entityTypes {
		s.filters[t] = struct{}{}
	}
}

// writePump drains the send channel to the connection and keeps the
// session alive with periodic pings.
func (s *session) writePump(heartbeat time.Duration) {
	ticker := time.NewTicker(heartbeat)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case frame := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(frame); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
