package dto

import (
	"encoding/json"
	"testing"
)

func TestErrorResponseJSON(t *testing.T) {
	body, err := json.Marshal(ErrorResponse{Error: "report not found", Message: "Error: File not found"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"error":"report not found","message":"Error: File not found"}`
	if string(body) != want {
		t.Fatalf("expected %s, got %s", want, body)
	}
}

func TestNewHealthResponseOmitsEmptyChecks(t *testing.T) {
	body, err := json.Marshal(NewHealthResponse("ok", map[string]string{}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if string(body) != `{"status":"ok"}` {
		t.Fatalf("expected checks to be omitted, got %s", body)
	}

	resp := NewHealthResponse("ready", map[string]string{"redis": "ok"})
	if resp.Checks["redis"] != "ok" {
		t.Fatalf("expected redis check, got %+v", resp)
	}
}
