package models

// AuthContext is the authenticated identity attached to every request by
// the transport layer. Token issuance and claim semantics belong to the
// external auth service; the sync engine only consumes the extracted
// values.
type AuthContext struct {
	UserID   string   `json:"userId"`
	TenantID string   `json:"tenantId"`
	DeviceID string   `json:"deviceId"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the context carries the named role.
func (a AuthContext) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
