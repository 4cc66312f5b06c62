package webhook

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Validation runs before any store access, so the 400 paths are testable
// without a database.
func TestSyncOrderRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{{{`},
		{"missing id", `{"line_items": [], "billing": {"email": "a@b.c"}}`},
		{"zero id", `{"id": 0, "line_items": [], "billing": {"email": "a@b.c"}}`},
		{"missing line_items", `{"id": 5, "billing": {"email": "a@b.c"}}`},
		{"line_items not array", `{"id": 5, "line_items": "nope", "billing": {"email": "a@b.c"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/webhook/syncOrder", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			SyncOrder(rec, req, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != "Invalid payload" {
				t.Fatalf("body = %q, want Invalid payload", got)
			}
		})
	}
}

func TestSyncOrderRejectsMissingEmail(t *testing.T) {
	bodies := []string{
		`{"id": 5, "line_items": []}`,
		`{"id": 5, "line_items": [], "billing": {"first_name": "A"}}`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/api/webhook/syncOrder", strings.NewReader(body))
		rec := httptest.NewRecorder()
		SyncOrder(rec, req, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "Missing customer email" {
			t.Fatalf("body = %q, want Missing customer email", got)
		}
	}
}

func TestUpdateOrderStatusRejectsBadPayloads(t *testing.T) {
	bodies := []string{
		`not json`,
		`{"status": "shipped"}`,
		`{"id": 5}`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/api/webhook/updateOrderStatus", strings.NewReader(body))
		rec := httptest.NewRecorder()
		UpdateOrderStatus(rec, req, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}
