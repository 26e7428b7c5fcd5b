package http

import (
	"encoding/json"
	"net/http"

	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/utils"
	"github.com/edusync/statesync/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listConflicts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	auth, found := utils.GetAuthFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listConflicts").Msg("no auth context in request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.services.Conflicts.ListConflicts(ctx, auth)
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.listConflicts").Msg("error listing conflicts")
		http.Error(w, "error listing conflicts", statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) resolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	auth, found := utils.GetAuthFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.resolveConflict").Msg("no auth context in request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conflictID := chi.URLParam(r, "conflictID")
	if conflictID == "" {
		log.Error().Str("func", "*Handler.resolveConflict").Msg("no conflict ID in path")
		http.Error(w, "no conflict ID in path", http.StatusBadRequest)
		return
	}

	var resolutionRequest models.ConflictResolutionRequest
	if err := json.NewDecoder(r.Body).Decode(&resolutionRequest); err != nil {
		log.Err(err).Str("func", "*Handler.resolveConflict").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	conflict, err := h.services.Conflicts.ResolveConflict(ctx, auth, conflictID, resolutionRequest)
	if err != nil {
		log.Error().Err(err).
			Str("func", "*Handler.resolveConflict").
			Str("conflict_id", conflictID).
			Msg("error resolving conflict")
		http.Error(w, "error resolving conflict", statusFromError(err))
		return
	}

	utils.WriteJSON(w, conflict, http.StatusOK)
}
