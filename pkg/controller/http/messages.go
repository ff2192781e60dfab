package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"figrelay/pkg/domain/interfaces"
	"figrelay/pkg/domain/types"
)

// MessagesHandler exposes sent-message inspection and retraction.
type MessagesHandler struct {
	notifyUC interfaces.NotifyUseCase
}

// NewMessagesHandler creates a new MessagesHandler
func NewMessagesHandler(notifyUC interfaces.NotifyUseCase) *MessagesHandler {
	return &MessagesHandler{notifyUC: notifyUC}
}

// List returns all retained sent-message records.
func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.notifyUC.ListMessages(r.Context())
	if err != nil {
		ctxlog.From(r.Context()).Error("Failed to list sent messages", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": records})
}

// Get returns the record for one fingerprint.
func (h *MessagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")

	rec, err := h.notifyUC.Inspect(r.Context(), fingerprint)
	if err != nil {
		if errors.Is(err, types.ErrRecordNotFound) {
			writeError(w, err, http.StatusNotFound)
			return
		}
		ctxlog.From(r.Context()).Error("Failed to inspect sent message", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Retract deletes the platform message for a fingerprint. A failed platform
// delete keeps the record so the caller can retry.
func (h *MessagesHandler) Retract(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")
	logger := ctxlog.From(r.Context())

	if err := h.notifyUC.Retract(r.Context(), fingerprint); err != nil {
		switch {
		case errors.Is(err, types.ErrRecordNotFound):
			writeError(w, err, http.StatusNotFound)
		case goerr.HasTag(err, types.TagTransport):
			logger.Error("Failed to delete platform message", "error", err, "fingerprint", fingerprint)
			writeError(w, err, http.StatusBadGateway)
		default:
			logger.Error("Failed to retract message", "error", err, "fingerprint", fingerprint)
			writeError(w, err, http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "retracted",
		"fingerprint": fingerprint,
	})
}
