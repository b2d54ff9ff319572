package httpapi_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
)

func TestStatusCodeName(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{200, "OK"},
		{201, "CREATED"},
		{400, "BAD_REQUEST"},
		{401, "UNAUTHORIZED"},
		{403, "FORBIDDEN"},
		{404, "NOT_FOUND"},
		{409, "CONFLICT"},
		{410, "TOKEN_EXPIRED"},
		{500, "SERVER_ERROR"},
		{502, "SERVER_ERROR"},
	}
	for _, tt := range tests {
		if got := httpapi.StatusCodeName(tt.status); got != tt.want {
			t.Errorf("StatusCodeName(%d): got %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestWrite_EnvelopeAndPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.OK(rec, "it worked", map[string]any{"count": 3})

	if rec.Code != 200 {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["status"] != float64(200) {
		t.Errorf("status field: got %v", body["status"])
	}
	if body["message"] != "it worked" {
		t.Errorf("message field: got %v", body["message"])
	}
	if body["status_code"] != "OK" {
		t.Errorf("status_code field: got %v", body["status_code"])
	}
	// Payload keys merge at the top level.
	if body["count"] != float64(3) {
		t.Errorf("payload field: got %v", body["count"])
	}
}

func TestError_NoPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.Error(rec, 404, "plan not found")

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["status_code"] != "NOT_FOUND" {
		t.Errorf("status_code: got %v", body["status_code"])
	}
	if len(body) != 3 {
		t.Errorf("error body should carry only the envelope, got %v", body)
	}
}

func TestDecode_Validation(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"not-an-email"}`))
	var p payload
	err := httpapi.Decode(req, &p)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "Email") {
		t.Errorf("error should name the failing field, got %q", err.Error())
	}

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.co"}`))
	if err := httpapi.Decode(req, &p); err != nil {
		t.Fatalf("Decode failed on valid payload: %v", err)
	}

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
	if err := httpapi.Decode(req, &p); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
