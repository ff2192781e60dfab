package http

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"figrelay/pkg/domain/interfaces"
	"figrelay/pkg/domain/model"
)

// Figma webhook event types handled here.
const (
	figmaEventPing           = "PING"
	figmaEventLibraryPublish = "LIBRARY_PUBLISH"
)

// figmaPayload is the subset of the Figma webhook body this service reads.
type figmaPayload struct {
	EventType   string `json:"event_type"`
	Passcode    string `json:"passcode"`
	FileKey     string `json:"file_key"`
	FileName    string `json:"file_name"`
	Description string `json:"description"`
	TriggeredBy struct {
		ID     string `json:"id"`
		Handle string `json:"handle"`
	} `json:"triggered_by"`
	Timestamp string `json:"timestamp"`
}

// WebhookHandler handles Figma publish webhooks
type WebhookHandler struct {
	passcode string
	notifyUC interfaces.NotifyUseCase
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(passcode string, notifyUC interfaces.NotifyUseCase) *WebhookHandler {
	return &WebhookHandler{
		passcode: passcode,
		notifyUC: notifyUC,
	}
}

// Handle processes webhook requests
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var payload figmaPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Error("Failed to parse webhook payload", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}

	// Figma authenticates webhooks with a shared passcode in the body
	if !h.verifyPasscode(payload.Passcode) {
		logger.Warn("Invalid webhook passcode", "file_key", payload.FileKey)
		writeError(w, goerr.New("invalid passcode"), http.StatusUnauthorized)
		return
	}

	switch payload.EventType {
	case figmaEventPing:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	case figmaEventLibraryPublish:
		// fall through to processing
	default:
		logger.Info("Ignoring unsupported event type", "event_type", payload.EventType)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	event := &model.RawEvent{
		ID:               uuid.NewString(),
		EventType:        payload.EventType,
		DestinationID:    payload.FileKey,
		DestinationLabel: payload.FileName,
		Description:      payload.Description,
		TriggeredBy:      payload.TriggeredBy.Handle,
		ReceivedAt:       time.Now(),
	}

	result, err := h.notifyUC.HandleEvent(ctx, event)
	if err != nil {
		// Transport failures bubble up here; everything else is a
		// structured outcome in the result.
		logger.Error("Failed to process publish event", "error", err)
		writeError(w, err, http.StatusBadGateway)
		return
	}

	response := map[string]string{
		"status":      "skipped",
		"fingerprint": result.Fingerprint,
	}
	if result.Sent {
		response["status"] = "sent"
	} else if reason := result.Reason(); reason != "" {
		response["reason"] = reason
	}
	writeJSON(w, http.StatusOK, response)
}

// verifyPasscode compares the inbound passcode in constant time.
func (h *WebhookHandler) verifyPasscode(passcode string) bool {
	if h.passcode == "" || passcode == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(passcode), []byte(h.passcode)) == 1
}
