package http

import (
	"net/http"

	"github.com/edusync/statesync/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"version": h.config.App.Version}, http.StatusOK)
}
