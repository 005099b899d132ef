package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.StatusCode() != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.StatusCode())
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(cause, CodeInternal, "store unreachable", http.StatusInternalServerError)

	if !errors.Is(wrapped, cause) {
		t.Error("expected wrapped error to unwrap to the cause")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without cause",
			appErr:   New(CodeNotFound, "mission not found", http.StatusNotFound),
			expected: "NOT_FOUND: mission not found",
		},
		{
			name:     "with cause",
			appErr:   Wrap(errors.New("socket closed"), CodeInternal, "store failed", http.StatusInternalServerError),
			expected: "INTERNAL_ERROR: store failed (caused by: socket closed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Mission", "abc123")

	if err.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, err.Code)
	}
	if err.Details["id"] != "abc123" {
		t.Errorf("expected id detail abc123, got %v", err.Details["id"])
	}
}

func TestConflictWithCode(t *testing.T) {
	err := ConflictWithCode("MISSION_FULL", "mission is at capacity")

	if err.Code != "MISSION_FULL" {
		t.Errorf("expected domain code, got %s", err.Code)
	}
	if err.StatusCode() != http.StatusConflict {
		t.Errorf("expected 409, got %d", err.StatusCode())
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("already registered")
	if got := AsAppError(appErr); got != appErr {
		t.Error("expected AsAppError to return the same AppError")
	}

	plain := errors.New("boom")
	converted := AsAppError(plain)
	if converted.Code != CodeInternal {
		t.Errorf("expected internal code for plain error, got %s", converted.Code)
	}
	if !errors.Is(converted, plain) {
		t.Error("expected converted error to keep the cause")
	}
}
