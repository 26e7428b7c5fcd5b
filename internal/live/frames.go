package live

import (
	"time"

	"github.com/edusync/statesync/models"
)

// FrameType discriminates the JSON messages exchanged over a live
// session.
type FrameType string

// Client-originated frame types.
const (
	FrameSubscribe   FrameType = "SUBSCRIBE"
	FrameUnsubscribe FrameType = "UNSUBSCRIBE"
	FramePing        FrameType = "PING"
)

// Server-originated frame types.
const (
	FramePong                 FrameType = "PONG"
	FrameChangeNotification   FrameType = "CHANGE_NOTIFICATION"
	FrameConflictNotification FrameType = "CONFLICT_NOTIFICATION"
	FrameSyncComplete         FrameType = "SYNC_COMPLETE"
	FrameError                FrameType = "ERROR"
)

// ConflictNotice is the trimmed conflict payload broadcast over the live
// channel. Like change notifications it carries no field data; the device
// fetches the full conflict over HTTP.
type ConflictNotice struct {
	ConflictID          string                    `json:"conflictId"`
	EntityType          models.EntityType         `json:"entityType"`
	EntityID            string                    `json:"entityId"`
	SuggestedResolution models.ResolutionStrategy `json:"suggestedResolution"`
}

// Frame is the wire format of one live-channel message. Exactly the
// fields relevant to Type are populated.
type Frame struct {
	Type FrameType `json:"type"`

	// EntityTypes scopes a SUBSCRIBE; empty means all types.
	EntityTypes []models.EntityType `json:"entityTypes,omitempty"`

	// Change is set on CHANGE_NOTIFICATION frames.
	Change *models.ChangeNotification `json:"change,omitempty"`

	// Conflict is set on CONFLICT_NOTIFICATION frames.
	Conflict *ConflictNotice `json:"conflict,omitempty"`

	// ServerTimestamp is set on SYNC_COMPLETE and PONG frames.
	ServerTimestamp *time.Time `json:"serverTimestamp,omitempty"`

	// Error is set on ERROR frames.
	Error string `json:"error,omitempty"`
}
