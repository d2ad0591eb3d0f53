package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/tavernkeep/gamemaster/pkg/actor"
	"github.com/tavernkeep/gamemaster/pkg/chat"
	"github.com/tavernkeep/gamemaster/pkg/scenario"
	"github.com/tavernkeep/gamemaster/pkg/state"
)

// Storage defines persistence for sessions, characters, scenarios and
// the idempotency cache. Load methods return nil, nil when the record
// does not exist.
type Storage interface {
	// Ping tests the storage connection
	Ping(ctx context.Context) error

	// Close closes the storage connection
	Close() error

	SaveSession(ctx context.Context, id uuid.UUID, s *state.Session) error
	LoadSession(ctx context.Context, id uuid.UUID) (*state.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	SaveCharacter(ctx context.Context, id uuid.UUID, ch *actor.Character) error
	LoadCharacter(ctx context.Context, id uuid.UUID) (*actor.Character, error)

	// GetScenario loads a scenario definition by filename
	GetScenario(ctx context.Context, filename string) (*scenario.Scenario, error)

	// ListScenarios returns a map of scenario names to filenames
	ListScenarios(ctx context.Context) (map[string]string, error)

	// CacheResponse stores a completed turn response under an
	// idempotency key
	CacheResponse(ctx context.Context, sessionID uuid.UUID, key string, resp *chat.ActionResponse) error

	// CachedResponse returns a previously cached turn response, or nil
	CachedResponse(ctx context.Context, sessionID uuid.UUID, key string) (*chat.ActionResponse, error)
}
