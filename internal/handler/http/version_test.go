package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edusync/statesync/internal/service"
)

func TestGetServerVersion(t *testing.T) {
	h := newTestHandler(&service.Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()

	h.getServerVersion(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp["version"] != "1.0.0-test" {
		t.Errorf("expected version 1.0.0-test, got %q", resp["version"])
	}
}
