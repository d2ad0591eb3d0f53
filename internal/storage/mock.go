package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/tavernkeep/gamemaster/pkg/actor"
	"github.com/tavernkeep/gamemaster/pkg/chat"
	"github.com/tavernkeep/gamemaster/pkg/scenario"
	"github.com/tavernkeep/gamemaster/pkg/state"
)

// MockStorage is an in-memory implementation of Storage for testing
type MockStorage struct {
	mu         sync.RWMutex
	sessions   map[uuid.UUID]*state.Session
	characters map[uuid.UUID]*actor.Character
	scenarios  map[string]*scenario.Scenario
	cached     map[string]*chat.ActionResponse
	pingError  error

	SaveSessionError   error
	SaveCharacterError error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions:   make(map[uuid.UUID]*state.Session),
		characters: make(map[uuid.UUID]*actor.Character),
		scenarios:  make(map[string]*scenario.Scenario),
		cached:     make(map[string]*chat.ActionResponse),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveSession(ctx context.Context, id uuid.UUID, s *state.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveSessionError != nil {
		return m.SaveSessionError
	}
	cp := *s
	m.sessions[id] = &cp
	return nil
}

func (m *MockStorage) LoadSession(ctx context.Context, id uuid.UUID) (*state.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *MockStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MockStorage) SaveCharacter(ctx context.Context, id uuid.UUID, ch *actor.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveCharacterError != nil {
		return m.SaveCharacterError
	}
	cp := *ch
	m.characters[id] = &cp
	return nil
}

func (m *MockStorage) LoadCharacter(ctx context.Context, id uuid.UUID) (*actor.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ch, ok := m.characters[id]
	if !ok {
		return nil, nil
	}
	cp := *ch
	return &cp, nil
}

// AddScenario registers a scenario under the given filename
func (m *MockStorage) AddScenario(filename string, s *scenario.Scenario) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios[filename] = s
}

func (m *MockStorage) GetScenario(ctx context.Context, filename string) (*scenario.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.scenarios[filename]
	if !ok {
		return nil, fmt.Errorf("scenario not found: %s", filename)
	}
	return s, nil
}

func (m *MockStorage) ListScenarios(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.scenarios))
	for filename, s := range m.scenarios {
		out[s.Name] = filename
	}
	return out, nil
}

func (m *MockStorage) CacheResponse(ctx context.Context, sessionID uuid.UUID, key string, resp *chat.ActionResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *resp
	m.cached[idempotencyKey(sessionID, key)] = &cp
	return nil
}

func (m *MockStorage) CachedResponse(ctx context.Context, sessionID uuid.UUID, key string) (*chat.ActionResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp, ok := m.cached[idempotencyKey(sessionID, key)]
	if !ok {
		return nil, nil
	}
	cp := *resp
	return &cp, nil
}
