package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tavernkeep/gamemaster/internal/worker"
	"github.com/tavernkeep/gamemaster/pkg/chat"
)

// ActionHandler handles player action requests
type ActionHandler struct {
	processor *worker.ActionProcessor
	logger    *slog.Logger
}

func NewActionHandler(processor *worker.ActionProcessor, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{
		processor: processor,
		logger:    logger,
	}
}

// ServeHTTP handles POST /v1/action
func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var req chat.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'session_id' and 'action' fields.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.processor.ProcessAction(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, worker.ErrSessionNotFound):
			writeError(w, h.logger, http.StatusNotFound, "Session not found.")
		case errors.Is(err, worker.ErrSessionEnded):
			writeError(w, h.logger, http.StatusConflict, "Session has already ended.")
		default:
			h.logger.Error("Failed to process action", "error", err, "session_id", req.SessionID)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to process action. Please try again.")
		}
		return
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}
