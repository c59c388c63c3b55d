package errors

import (
	"encoding/json"
	stdErrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPErrorAdapter_StatusCodeFor(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, http.StatusOK},
		{"validation", ValidationError("missing route").Build(), http.StatusBadRequest},
		{"config", ConfigError("bad config").Build(), http.StatusBadRequest},
		{"not found", NotFoundError("unknown route").Build(), http.StatusNotFound},
		{"docs", NewError(CategoryDocs, "bad page").Build(), http.StatusUnprocessableEntity},
		{"runtime", RuntimeError("reloading").Build(), http.StatusServiceUnavailable},
		{"unclassified", stdErrors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.StatusCodeFor(tt.err); got != tt.expected {
				t.Errorf("StatusCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())
	req := httptest.NewRequest(http.MethodGet, "/api/nav?route=/missing/", nil)
	rec := httptest.NewRecorder()

	adapter.WriteErrorResponse(rec, req, NotFoundError("route not found").WithContext("route", "/missing/").Build())

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	var payload HTTPErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Error != "route not found" || payload.Code != "not_found" {
		t.Errorf("unexpected payload: %+v", payload)
	}
	if payload.Details["route"] != "/missing/" {
		t.Errorf("expected route detail, got %v", payload.Details)
	}
}
