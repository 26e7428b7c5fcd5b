package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/service"
	"github.com/edusync/statesync/internal/service/mocks"
	"github.com/edusync/statesync/internal/utils"
	"github.com/edusync/statesync/models"
	"go.uber.org/mock/gomock"
)

func newTestHandler(services *service.Services) *Handler {
	return &Handler{
		services: services,
		config: &config.StructuredConfig{
			App: config.App{
				Version:      "1.0.0-test",
				TokenSignKey: "test-sign-key",
				TokenIssuer:  "edusync-auth",
			},
		},
		logger: logger.Nop(),
	}
}

func testHandlerAuth() models.AuthContext {
	return models.AuthContext{
		UserID:   "user-1",
		TenantID: "tenant-1",
		DeviceID: "device-a",
	}
}

func withAuth(r *http.Request) *http.Request {
	ctx := utils.WithAuthContext(r.Context(), testHandlerAuth())
	return r.WithContext(ctx)
}

func TestPushChanges_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncMock := mocks.NewMockSyncManager(ctrl)
	syncMock.EXPECT().
		PushChanges(gomock.Any(), testHandlerAuth(), gomock.Any()).
		Return(models.PushResult{
			Success:            true,
			ProcessedCount:     1,
			AcceptedOperations: []string{"op-1"},
			ServerTimestamp:    time.Now().UTC(),
		}, nil)

	h := newTestHandler(&service.Services{Sync: syncMock})

	body, _ := json.Marshal(models.PushChangesRequest{
		DeviceID: "device-a",
		Operations: []models.SyncOperation{{
			ID:         "op-1",
			EntityType: models.EntityTypeProgress,
			EntityID:   "p-1",
			Operation:  models.OperationUpdate,
		}},
	})

	req := withAuth(httptest.NewRequest(http.MethodPost, "/api/sync/push", bytes.NewBuffer(body)))
	rr := httptest.NewRecorder()

	h.pushChanges(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp models.PushResult
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !resp.Success || resp.ProcessedCount != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPushChanges_NoAuthContext(t *testing.T) {
	h := newTestHandler(&service.Services{})

	req := httptest.NewRequest(http.MethodPost, "/api/sync/push", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	h.pushChanges(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestPushChanges_InvalidJSON(t *testing.T) {
	h := newTestHandler(&service.Services{})

	req := withAuth(httptest.NewRequest(http.MethodPost, "/api/sync/push", strings.NewReader(`{not json`)))
	rr := httptest.NewRecorder()

	h.pushChanges(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestPushChanges_MissingDeviceID(t *testing.T) {
	h := newTestHandler(&service.Services{})

	// neither the body nor the auth context carries a device id
	auth := testHandlerAuth()
	auth.DeviceID = ""
	req := httptest.NewRequest(http.MethodPost, "/api/sync/push", strings.NewReader(`{"operations":[]}`))
	req = req.WithContext(utils.WithAuthContext(req.Context(), auth))
	rr := httptest.NewRecorder()

	h.pushChanges(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), ErrMissingDeviceID.Error()) {
		t.Errorf("expected missing-device message, got %q", rr.Body.String())
	}
}

func TestPushChanges_BatchTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncMock := mocks.NewMockSyncManager(ctrl)
	syncMock.EXPECT().
		PushChanges(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.PushResult{}, service.ErrBatchTooLarge)

	h := newTestHandler(&service.Services{Sync: syncMock})

	req := withAuth(httptest.NewRequest(http.MethodPost, "/api/sync/push", strings.NewReader(`{"deviceId":"device-a"}`)))
	rr := httptest.NewRecorder()

	h.pushChanges(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestPullChanges_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncMock := mocks.NewMockSyncManager(ctrl)
	syncMock.EXPECT().
		PullChanges(gomock.Any(), testHandlerAuth(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.AuthContext, req models.PullChangesRequest) (models.PullResult, error) {
			if req.Cursor != "1754049600000:7" {
				t.Errorf("unexpected cursor: %q", req.Cursor)
			}
			return models.PullResult{
				Changes:   []models.ServerChange{{EntityType: models.EntityTypeProgress, EntityID: "p-1", Version: 8}},
				Deletions: []string{},
				HasMore:   false,
			}, nil
		})

	h := newTestHandler(&service.Services{Sync: syncMock})

	req := withAuth(httptest.NewRequest(http.MethodPost, "/api/sync/pull",
		strings.NewReader(`{"deviceId":"device-a","cursor":"1754049600000:7"}`)))
	rr := httptest.NewRecorder()

	h.pullChanges(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp models.PullResult
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(resp.Changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(resp.Changes))
	}
}

func TestPullChanges_InvalidCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncMock := mocks.NewMockSyncManager(ctrl)
	syncMock.EXPECT().
		PullChanges(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.PullResult{}, service.ErrInvalidCursor)

	h := newTestHandler(&service.Services{Sync: syncMock})

	req := withAuth(httptest.NewRequest(http.MethodPost, "/api/sync/pull",
		strings.NewReader(`{"deviceId":"device-a","cursor":"garbage"}`)))
	rr := httptest.NewRecorder()

	h.pullChanges(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestComputeDelta_FeatureDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deltaMock := mocks.NewMockDeltaManager(ctrl)
	deltaMock.EXPECT().
		ComputeDelta(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.DeltaResult{}, service.ErrFeatureDisabled)

	h := newTestHandler(&service.Services{Delta: deltaMock})

	req := withAuth(httptest.NewRequest(http.MethodPost, "/api/sync/delta",
		strings.NewReader(`{"entityType":"progress","entityId":"p-1"}`)))
	rr := httptest.NewRecorder()

	h.computeDelta(rr, req)

	if rr.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rr.Code)
	}
}

func TestComputeDelta_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deltaMock := mocks.NewMockDeltaManager(ctrl)
	deltaMock.EXPECT().
		ComputeDelta(gomock.Any(), testHandlerAuth(), gomock.Any()).
		Return(models.DeltaResult{
			EntityType:    models.EntityTypeProgress,
			EntityID:      "p-1",
			ServerVersion: 7,
			HasConflict:   true,
		}, nil)

	h := newTestHandler(&service.Services{Delta: deltaMock})

	req := withAuth(httptest.NewRequest(http.MethodPost, "/api/sync/delta",
		strings.NewReader(`{"entityType":"progress","entityId":"p-1","clientVersion":5}`)))
	rr := httptest.NewRecorder()

	h.computeDelta(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp models.DeltaResult
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !resp.HasConflict || resp.ServerVersion != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
