package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/tavernkeep/gamemaster/pkg/actor"
	"github.com/tavernkeep/gamemaster/pkg/chat"
	"github.com/tavernkeep/gamemaster/pkg/state"
)

func setupTestStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewRedisStorage(mr.Addr(), t.TempDir(), logger)
	t.Cleanup(func() { _ = s.Close() })

	return s, mr
}

func TestRedisStorage_SaveAndLoadSession(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	s := state.NewSession(uuid.New(), "lighthouse.json", "the beach", 10)
	s.AppendMessage(chat.ChatRoleUser, "look around")

	if err := store.SaveSession(ctx, s.ID, s); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	loaded, err := store.LoadSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected session, got nil")
	}
	if loaded.ID != s.ID || loaded.Location != "the beach" {
		t.Errorf("loaded session mismatch: %+v", loaded)
	}
	if len(loaded.ChatHistory) != 1 {
		t.Errorf("chat history not persisted: %v", loaded.ChatHistory)
	}
}

func TestRedisStorage_LoadSession_NotFound(t *testing.T) {
	store, _ := setupTestStorage(t)

	loaded, err := store.LoadSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil for missing session, got %+v", loaded)
	}
}

func TestRedisStorage_DeleteSession(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	s := state.NewSession(uuid.New(), "s.json", "start", 10)
	if err := store.SaveSession(ctx, s.ID, s); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if err := store.DeleteSession(ctx, s.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	loaded, err := store.LoadSession(ctx, s.ID)
	if err != nil || loaded != nil {
		t.Errorf("session not deleted: %+v, %v", loaded, err)
	}
}

func TestRedisStorage_SaveAndLoadCharacter(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	ch := actor.NewCharacter("Mira", "a salvage diver").AddItem("rope")
	if err := store.SaveCharacter(ctx, ch.ID, &ch); err != nil {
		t.Fatalf("SaveCharacter failed: %v", err)
	}

	loaded, err := store.LoadCharacter(ctx, ch.ID)
	if err != nil {
		t.Fatalf("LoadCharacter failed: %v", err)
	}
	if loaded == nil || loaded.Name != "Mira" || !loaded.HasItem("rope") {
		t.Errorf("loaded character mismatch: %+v", loaded)
	}
}

func TestRedisStorage_IdempotencyCache(t *testing.T) {
	store, mr := setupTestStorage(t)
	ctx := context.Background()
	sessionID := uuid.New()

	resp := &chat.ActionResponse{
		SessionID: sessionID,
		Narrative: "You strike true.",
		TurnCount: 3,
	}
	if err := store.CacheResponse(ctx, sessionID, "key-1", resp); err != nil {
		t.Fatalf("CacheResponse failed: %v", err)
	}

	cached, err := store.CachedResponse(ctx, sessionID, "key-1")
	if err != nil {
		t.Fatalf("CachedResponse failed: %v", err)
	}
	if cached == nil || cached.Narrative != "You strike true." || cached.TurnCount != 3 {
		t.Errorf("cached response mismatch: %+v", cached)
	}

	// Different key is a miss.
	miss, err := store.CachedResponse(ctx, sessionID, "key-2")
	if err != nil || miss != nil {
		t.Errorf("expected miss, got %+v, %v", miss, err)
	}

	// The cache entry expires.
	mr.FastForward(idempotencyTTL + 1)
	expired, err := store.CachedResponse(ctx, sessionID, "key-1")
	if err != nil || expired != nil {
		t.Errorf("expected expired entry, got %+v, %v", expired, err)
	}
}

func TestRedisStorage_Scenarios(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	dataDir := t.TempDir()
	scenariosDir := filepath.Join(dataDir, "scenarios")
	if err := os.MkdirAll(scenariosDir, 0o755); err != nil {
		t.Fatal(err)
	}
	scenarioJSON := `{
		"name": "The Drowned Lighthouse",
		"difficulty": "hard",
		"world_setting": "A storm-wrecked coast.",
		"opening_location": "the shingle beach"
	}`
	if err := os.WriteFile(filepath.Join(scenariosDir, "lighthouse.json"), []byte(scenarioJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewRedisStorage(mr.Addr(), dataDir, logger)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	s, err := store.GetScenario(ctx, "lighthouse.json")
	if err != nil {
		t.Fatalf("GetScenario failed: %v", err)
	}
	if s.Name != "The Drowned Lighthouse" {
		t.Errorf("scenario name = %q", s.Name)
	}
	if s.MaxTurns != 10 {
		t.Errorf("max turns should default to 10, got %d", s.MaxTurns)
	}

	if _, err := store.GetScenario(ctx, "missing.json"); err == nil {
		t.Error("expected error for missing scenario")
	}

	list, err := store.ListScenarios(ctx)
	if err != nil {
		t.Fatalf("ListScenarios failed: %v", err)
	}
	if list["The Drowned Lighthouse"] != "lighthouse.json" {
		t.Errorf("list = %v", list)
	}
}
