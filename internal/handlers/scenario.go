package handlers

import (
	"log/slog"
	"net/http"

	"github.com/tavernkeep/gamemaster/internal/storage"
)

// ScenarioHandler lists available scenarios
type ScenarioHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewScenarioHandler(storage storage.Storage, logger *slog.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles GET /v1/scenarios
func (h *ScenarioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}

	scenarios, err := h.storage.ListScenarios(r.Context())
	if err != nil {
		h.logger.Error("Failed to list scenarios", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list scenarios")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, scenarios)
}
