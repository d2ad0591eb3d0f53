package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavernkeep/gamemaster/internal/services"
	"github.com/tavernkeep/gamemaster/internal/storage"
	"github.com/tavernkeep/gamemaster/internal/worker"
	"github.com/tavernkeep/gamemaster/pkg/actor"
	"github.com/tavernkeep/gamemaster/pkg/chat"
	"github.com/tavernkeep/gamemaster/pkg/mechanics"
	"github.com/tavernkeep/gamemaster/pkg/scenario"
	"github.com/tavernkeep/gamemaster/pkg/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupActionHandler(t *testing.T) (*ActionHandler, *state.Session) {
	t.Helper()

	store := storage.NewMockStorage()
	llm := services.NewMockLLMService()

	sc := &scenario.Scenario{
		Name:            "The Drowned Lighthouse",
		WorldSetting:    "A storm-wrecked coast.",
		Difficulty:      mechanics.DifficultyNormal,
		OpeningLocation: "the shingle beach",
		MaxTurns:        10,
	}
	store.AddScenario("lighthouse.json", sc)

	ch := actor.NewCharacter("Mira", "")
	session := state.NewSession(ch.ID, "lighthouse.json", sc.OpeningLocation, sc.MaxTurns)

	ctx := context.Background()
	require.NoError(t, store.SaveCharacter(ctx, ch.ID, &ch))
	require.NoError(t, store.SaveSession(ctx, session.ID, session))

	processor := worker.NewActionProcessor(store, llm, mechanics.NewEngine(nil), testLogger())
	return NewActionHandler(processor, testLogger()), session
}

func postAction(t *testing.T, h *ActionHandler, req chat.ActionRequest) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/v1/action", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestActionHandler_ProcessesTurn(t *testing.T) {
	h, session := setupActionHandler(t)

	w := postAction(t, h, chat.ActionRequest{
		SessionID: session.ID,
		Action:    "look around",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp chat.ActionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, session.ID, resp.SessionID)
	assert.NotEmpty(t, resp.Narrative)
	assert.Equal(t, 1, resp.TurnCount)
	assert.Equal(t, 100, resp.HP)
}

func TestActionHandler_MethodNotAllowed(t *testing.T) {
	h, _ := setupActionHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/v1/action", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestActionHandler_InvalidBody(t *testing.T) {
	h, _ := setupActionHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/v1/action", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActionHandler_EmptyAction(t *testing.T) {
	h, session := setupActionHandler(t)

	w := postAction(t, h, chat.ActionRequest{SessionID: session.ID})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActionHandler_SessionNotFound(t *testing.T) {
	h, _ := setupActionHandler(t)

	w := postAction(t, h, chat.ActionRequest{
		SessionID: uuid.New(),
		Action:    "look around",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestActionHandler_EndedSessionConflicts(t *testing.T) {
	s := storage.NewMockStorage()
	llm := services.NewMockLLMService()
	sc := &scenario.Scenario{Name: "x", WorldSetting: "y", Difficulty: mechanics.DifficultyNormal, MaxTurns: 10}
	s.AddScenario("x.json", sc)

	ch := actor.NewCharacter("Mira", "")
	ended := state.NewSession(ch.ID, "x.json", "", 10)
	ended.End(state.EndingNeutral)

	ctx := context.Background()
	require.NoError(t, s.SaveCharacter(ctx, ch.ID, &ch))
	require.NoError(t, s.SaveSession(ctx, ended.ID, ended))

	handler := NewActionHandler(worker.NewActionProcessor(s, llm, mechanics.NewEngine(nil), testLogger()), testLogger())
	w := postAction(t, handler, chat.ActionRequest{SessionID: ended.ID, Action: "go"})

	assert.Equal(t, http.StatusConflict, w.Code)
}
