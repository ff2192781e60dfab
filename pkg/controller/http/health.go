package http

import (
	"net/http"

	"figrelay/pkg/domain/model"
	"figrelay/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "healthy",
		Service: "figrelay",
		Version: types.Version,
	}

	writeJSON(w, http.StatusOK, status)
}
