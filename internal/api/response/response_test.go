package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

// TestRespondJSON tests the JSON response helper.
func TestRespondJSON(t *testing.T) {
	t.Run("sets content-type and status code correctly", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondJSON(w, 200, map[string]string{"message": "success"})

		if w.Code != 200 {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}
	})

	t.Run("handles nil data without error", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondJSON(w, 204, nil)

		if w.Code != 204 {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("Expected empty body for nil data, got %q", w.Body.String())
		}
	})

	t.Run("handles un-encodable data gracefully", func(t *testing.T) {
		w := httptest.NewRecorder()

		// Channels cannot be JSON encoded; the helper logs and moves on.
		RespondJSON(w, 200, map[string]any{"channel": make(chan int)})

		if w.Code != 200 {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})
}

// TestRespondError tests the error envelope.
func TestRespondError(t *testing.T) {
	t.Run("encodes message and details", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondError(w, 400, "validation failed", "quantity: must be positive")

		if w.Code != 400 {
			t.Errorf("Expected status 400, got %d", w.Code)
		}

		var envelope ErrorResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&envelope)

		if envelope.Error != "validation failed" {
			t.Errorf("Expected error message, got %q", envelope.Error)
		}
		if envelope.Details != "quantity: must be positive" {
			t.Errorf("Expected details, got %v", envelope.Details)
		}
	})

	t.Run("omits empty details", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondError(w, 404, "resource not found", nil)

		body := w.Body.String()
		if body == "" {
			t.Fatal("Expected non-empty body")
		}
		if json.Valid([]byte(body)) == false {
			t.Fatalf("Expected valid JSON, got %q", body)
		}
	})
}
