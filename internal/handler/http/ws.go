package http

import (
	"net/http"

	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/utils"
)

// liveSync upgrades an authenticated request to a live WebSocket session.
// The device identity is mandatory here: without it the hub cannot
// suppress echo notifications for the device's own pushes.
func (h *Handler) liveSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if !h.config.Sync.LiveSyncEnabled {
		http.Error(w, "live sync is disabled", http.StatusNotImplemented)
		return
	}

	auth, found := utils.GetAuthFromContext(r.Context())
	if !found {
		log.Error().Str("func", "*Handler.liveSync").Msg("no auth context in request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if auth.DeviceID == "" {
		log.Err(ErrMissingDeviceID).Str("func", "*Handler.liveSync").Send()
		http.Error(w, ErrMissingDeviceID.Error(), http.StatusBadRequest)
		return
	}

	h.hub.HandleConnection(w, r, auth)
}
