package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tavernkeep/gamemaster/internal/storage"
	"github.com/tavernkeep/gamemaster/pkg/actor"
	"github.com/tavernkeep/gamemaster/pkg/state"
)

// CreateSessionRequest starts a new playthrough of a scenario.
type CreateSessionRequest struct {
	CharacterName        string `json:"character_name"`
	CharacterDescription string `json:"character_description,omitempty"`
	Scenario             string `json:"scenario"` // scenario filename
}

// SessionResponse is the session envelope returned on create and read.
type SessionResponse struct {
	Session   *state.Session   `json:"session"`
	Character *actor.Character `json:"character"`
}

// SessionHandler handles session lifecycle operations
type SessionHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewSessionHandler(storage storage.Storage, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP routes session requests:
// POST /v1/sessions         - create a session (and its character)
// GET /v1/sessions/{id}     - read a session
// DELETE /v1/sessions/{id}  - delete a session
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.TrimPrefix(r.URL.Path, "/v1/sessions")
	var sessionID uuid.UUID
	if idStr := strings.Trim(path, "/"); idStr != "" {
		var err error
		sessionID, err = uuid.Parse(idStr)
		if err != nil {
			h.logger.Warn("Invalid session ID", "id", idStr, "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
			return
		}
	}

	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodGet:
		h.handleGet(w, r, sessionID)
	case http.MethodDelete:
		h.handleDelete(w, r, sessionID)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CharacterName == "" {
		writeError(w, h.logger, http.StatusBadRequest, "character_name is required")
		return
	}
	if req.Scenario == "" {
		writeError(w, h.logger, http.StatusBadRequest, "scenario is required")
		return
	}

	sc, err := h.storage.GetScenario(r.Context(), req.Scenario)
	if err != nil {
		h.logger.Warn("Scenario not found", "scenario", req.Scenario, "error", err)
		writeError(w, h.logger, http.StatusNotFound, "Scenario not found")
		return
	}

	character := actor.NewCharacter(req.CharacterName, req.CharacterDescription)
	session := state.NewSession(character.ID, req.Scenario, sc.OpeningLocation, sc.MaxTurns)

	if err := h.storage.SaveCharacter(r.Context(), character.ID, &character); err != nil {
		h.logger.Error("Failed to save character", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to create session")
		return
	}
	if err := h.storage.SaveSession(r.Context(), session.ID, session); err != nil {
		h.logger.Error("Failed to save session", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.logger.Info("Session created",
		"session_id", session.ID,
		"character_id", character.ID,
		"scenario", req.Scenario)

	writeJSON(w, h.logger, http.StatusCreated, SessionResponse{
		Session:   session,
		Character: &character,
	})
}

func (h *SessionHandler) handleGet(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if id == uuid.Nil {
		writeError(w, h.logger, http.StatusBadRequest, "Session ID is required")
		return
	}

	session, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "error", err, "session_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if session == nil {
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return
	}

	character, err := h.storage.LoadCharacter(r.Context(), session.CharacterID)
	if err != nil {
		h.logger.Error("Failed to load character", "error", err, "session_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, SessionResponse{
		Session:   session,
		Character: character,
	})
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if id == uuid.Nil {
		writeError(w, h.logger, http.StatusBadRequest, "Session ID is required")
		return
	}

	if err := h.storage.DeleteSession(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "error", err, "session_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
