package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "openinterview/pkg/errors"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return body
}

func TestWriteErrorAppError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, apperrors.NotFound("Booking"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}

	body := decodeError(t, rec)
	if body.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %q, got %q", apperrors.CodeNotFound, body.Code)
	}
	if body.Error != "Booking not found" {
		t.Errorf("unexpected error message: %q", body.Error)
	}
}

func TestWriteErrorPlainError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, errors.New("connection reset"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}

	body := decodeError(t, rec)
	if body.Code != apperrors.CodeInternal {
		t.Errorf("expected code %q, got %q", apperrors.CodeInternal, body.Code)
	}
	if body.Error == "connection reset" {
		t.Error("raw error message leaked to the client")
	}
}

func TestWriteErrorIncludesDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, apperrors.NotFoundWithID("Profile", "abc123"))

	body := decodeError(t, rec)
	if body.Details["id"] != "abc123" {
		t.Errorf("expected details to carry the id, got %v", body.Details)
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteSuccess(rec, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %q", ct)
	}

	var body SuccessResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success response: %v", err)
	}
	data, ok := body.Data.(map[string]any)
	if !ok || data["status"] != "ok" {
		t.Errorf("unexpected payload: %v", body.Data)
	}
}

func TestWritePaginatedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	WritePaginated(rec, []string{"a", "b"}, 42, 10, 20)

	var body PaginatedResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode paginated response: %v", err)
	}
	if body.TotalCount != 42 || body.Limit != 10 || body.Offset != 20 {
		t.Errorf("unexpected pagination envelope: %+v", body)
	}
}
