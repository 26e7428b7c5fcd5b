package models

import "time"

// ServerChange is one entry of the sync history, emitted by the Pull path.
// Within a pull response changes are ordered by ascending
// (Timestamp, Version) so repeated pulls with the same cursor are
// idempotent and resumable.
type ServerChange struct {
	EntityType EntityType    `json:"entityType"`
	EntityID   string        `json:"entityId"`
	Operation  OperationType `json:"operation"`
	Data       FieldMap      `json:"data,omitempty"`
	Version    int64         `json:"version"`
	Timestamp  time.Time     `json:"timestamp"`

	// DeviceID is the device that originated the change; resolutions
	// performed server-side carry an empty device.
	DeviceID string `json:"deviceId,omitempty"`
}

// ChangeNotification is the lightweight payload broadcast to live
// subscribers after a change is accepted. It carries no field data — a
// receiving device pulls to obtain the actual change, so a missed
// notification is always recoverable.
type ChangeNotification struct {
	TenantID   string        `json:"-"`
	UserID     string        `json:"-"`
	EntityType EntityType    `json:"entityType"`
	EntityID   string        `json:"entityId"`
	Operation  OperationType `json:"operation"`
	Version    int64         `json:"version"`

	// DeviceID is the source device, letting subscribers suppress
	// notifications for their own writes.
	DeviceID string `json:"deviceId"`
}
