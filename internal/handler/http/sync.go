package http

import (
	"encoding/json"
	"net/http"

	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/utils"
	"github.com/edusync/statesync/models"
)

func (h *Handler) pushChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	auth, found := utils.GetAuthFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.pushChanges").Msg("no auth context in request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var pushRequest models.PushChangesRequest
	if err := json.NewDecoder(r.Body).Decode(&pushRequest); err != nil {
		log.Err(err).Str("func", "*Handler.pushChanges").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if pushRequest.DeviceID == "" {
		pushRequest.DeviceID = auth.DeviceID
	}
	if pushRequest.DeviceID == "" {
		log.Err(ErrMissingDeviceID).Str("func", "*Handler.pushChanges").Send()
		http.Error(w, ErrMissingDeviceID.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.services.Sync.PushChanges(ctx, auth, pushRequest)
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.pushChanges").Msg("error processing push batch")
		http.Error(w, "error processing push batch", statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) pullChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	auth, found := utils.GetAuthFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.pullChanges").Msg("no auth context in request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var pullRequest models.PullChangesRequest
	if err := json.NewDecoder(r.Body).Decode(&pullRequest); err != nil {
		log.Err(err).Str("func", "*Handler.pullChanges").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.Sync.PullChanges(ctx, auth, pullRequest)
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.pullChanges").Msg("error listing changes")
		http.Error(w, "error listing changes", statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) computeDelta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	auth, found := utils.GetAuthFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.computeDelta").Msg("no auth context in request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var deltaRequest models.DeltaRequest
	if err := json.NewDecoder(r.Body).Decode(&deltaRequest); err != nil {
		log.Err(err).Str("func", "*Handler.computeDelta").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.Delta.ComputeDelta(ctx, auth, deltaRequest)
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.computeDelta").Msg("error computing delta")
		http.Error(w, "error computing delta", statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
