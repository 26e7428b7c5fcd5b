package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edusync/statesync/internal/service"
	"github.com/edusync/statesync/internal/service/mocks"
	"github.com/edusync/statesync/internal/store"
	"github.com/edusync/statesync/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
)

// withConflictID injects a chi route parameter so handlers can be exercised
// without mounting the full router.
func withConflictID(r *http.Request, conflictID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("conflictID", conflictID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestListConflicts_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conflictsMock := mocks.NewMockConflictManager(ctrl)
	conflictsMock.EXPECT().
		ListConflicts(gomock.Any(), testHandlerAuth()).
		Return(models.ConflictListResult{
			Conflicts: []models.SyncConflict{{ID: "c-1", Status: models.ConflictPending}},
			Length:    1,
		}, nil)

	h := newTestHandler(&service.Services{Conflicts: conflictsMock})

	req := withAuth(httptest.NewRequest(http.MethodGet, "/api/sync/conflicts", nil))
	rr := httptest.NewRecorder()

	h.listConflicts(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp models.ConflictListResult
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Length != 1 || resp.Conflicts[0].ID != "c-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestListConflicts_NoAuthContext(t *testing.T) {
	h := newTestHandler(&service.Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/sync/conflicts", nil)
	rr := httptest.NewRecorder()

	h.listConflicts(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestResolveConflict_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conflictsMock := mocks.NewMockConflictManager(ctrl)
	conflictsMock.EXPECT().
		ResolveConflict(gomock.Any(), testHandlerAuth(), "c-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.AuthContext, _ string, req models.ConflictResolutionRequest) (models.SyncConflict, error) {
			if req.Resolution != models.ResolutionServerWins {
				t.Errorf("unexpected resolution: %s", req.Resolution)
			}
			return models.SyncConflict{ID: "c-1", Status: models.ConflictResolved}, nil
		})

	h := newTestHandler(&service.Services{Conflicts: conflictsMock})

	req := withAuth(httptest.NewRequest(http.MethodPost, "/api/sync/conflicts/c-1/resolve",
		strings.NewReader(`{"resolution":"SERVER_WINS"}`)))
	req = withConflictID(req, "c-1")
	rr := httptest.NewRecorder()

	h.resolveConflict(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp models.SyncConflict
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Status != models.ConflictResolved {
		t.Fatalf("expected resolved conflict, got %+v", resp)
	}
}

func TestResolveConflict_MissingID(t *testing.T) {
	h := newTestHandler(&service.Services{})

	req := withAuth(httptest.NewRequest(http.MethodPost, "/api/sync/conflicts//resolve",
		strings.NewReader(`{"resolution":"SERVER_WINS"}`)))
	req = withConflictID(req, "")
	rr := httptest.NewRecorder()

	h.resolveConflict(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestResolveConflict_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conflictsMock := mocks.NewMockConflictManager(ctrl)
	conflictsMock.EXPECT().
		ResolveConflict(gomock.Any(), gomock.Any(), "missing", gomock.Any()).
		Return(models.SyncConflict{}, store.ErrConflictNotFound)

	h := newTestHandler(&service.Services{Conflicts: conflictsMock})

	req := withAuth(httptest.NewRequest(http.MethodPost, "/api/sync/conflicts/missing/resolve",
		strings.NewReader(`{"resolution":"SERVER_WINS"}`)))
	req = withConflictID(req, "missing")
	rr := httptest.NewRecorder()

	h.resolveConflict(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestResolveConflict_AlreadyResolved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conflictsMock := mocks.NewMockConflictManager(ctrl)
	conflictsMock.EXPECT().
		ResolveConflict(gomock.Any(), gomock.Any(), "c-1", gomock.Any()).
		Return(models.SyncConflict{}, store.ErrConflictAlreadyResolved)

	h := newTestHandler(&service.Services{Conflicts: conflictsMock})

	req := withAuth(httptest.NewRequest(http.MethodPost, "/api/sync/conflicts/c-1/resolve",
		strings.NewReader(`{"resolution":"SERVER_WINS"}`)))
	req = withConflictID(req, "c-1")
	rr := httptest.NewRecorder()

	h.resolveConflict(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestResolveConflict_IncompleteMerge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conflictsMock := mocks.NewMockConflictManager(ctrl)
	conflictsMock.EXPECT().
		ResolveConflict(gomock.Any(), gomock.Any(), "c-1", gomock.Any()).
		Return(models.SyncConflict{}, service.ErrIncompleteMerge)

	h := newTestHandler(&service.Services{Conflicts: conflictsMock})

	req := withAuth(httptest.NewRequest(http.MethodPost, "/api/sync/conflicts/c-1/resolve",
		strings.NewReader(`{"resolution":"MANUAL","mergedData":{}}`)))
	req = withConflictID(req, "c-1")
	rr := httptest.NewRecorder()

	h.resolveConflict(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}
