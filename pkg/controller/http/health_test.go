package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	controller "figrelay/pkg/controller/http"
	"figrelay/pkg/domain/model"
	"figrelay/pkg/infra/registry"
	"figrelay/pkg/usecase"
)

func TestHealthEndpoint(t *testing.T) {
	uc := usecase.NewNotify(testRules(), usecase.NewGuard(), &stubMessenger{}, registry.NewMemory())
	server, err := controller.NewServer(context.Background(), uc, controller.WithPasscode("p"))
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want %v", w.Code, http.StatusOK)
	}

	var status model.HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("Status = %v, want healthy", status.Status)
	}
	if status.Service != "figrelay" {
		t.Errorf("Service = %v, want figrelay", status.Service)
	}
	if status.Version == "" {
		t.Error("Version should not be empty")
	}
}
