package models

// FieldDelta is the comparison result for a single field of one entity.
// HasConflict is true only when the client and server values differ AND
// the server's value changed since the version the client last saw.
type FieldDelta struct {
	Field       string     `json:"field"`
	ClientValue FieldValue `json:"clientValue"`
	ServerValue FieldValue `json:"serverValue"`
	HasConflict bool       `json:"hasConflict"`
}

// DeltaResult is the output of comparing a client's believed state for one
// entity against the current server state.
type DeltaResult struct {
	EntityType    EntityType   `json:"entityType"`
	EntityID      string       `json:"entityId"`
	HasConflict   bool         `json:"hasConflict"`
	ServerVersion int64        `json:"serverVersion"`
	FieldDeltas   []FieldDelta `json:"fieldDeltas"`

	// Conflict is populated when the delta was computed as part of a push
	// that produced a persisted conflict record. Read-only probes leave
	// it nil.
	Conflict *SyncConflict `json:"conflict,omitempty"`
}

// ConflictingFields returns the names of all fields flagged as conflicting,
// in the order they appear in FieldDeltas.
func (d DeltaResult) ConflictingFields() []string {
	var fields []string
	for _, fd := range d.FieldDeltas {
		if fd.HasConflict {
			fields = append(fields, fd.Field)
		}
	}
	return fields
}
