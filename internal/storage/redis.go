package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tavernkeep/gamemaster/pkg/actor"
	"github.com/tavernkeep/gamemaster/pkg/chat"
	"github.com/tavernkeep/gamemaster/pkg/scenario"
	"github.com/tavernkeep/gamemaster/pkg/state"
)

const (
	sessionTTL     = 24 * time.Hour
	characterTTL   = 24 * time.Hour
	idempotencyTTL = 10 * time.Minute
)

// RedisStorage implements the Storage interface using Redis for game
// records and the filesystem for static resources (scenarios)
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  rdb,
		logger:  logger,
		dataDir: dataDir,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// Session operations (Redis-backed)

func (r *RedisStorage) SaveSession(ctx context.Context, id uuid.UUID, s *state.Session) error {
	s.UpdatedAt = time.Now()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := "session:" + id.String()
	if err := r.client.Set(ctx, key, string(data), sessionTTL).Err(); err != nil {
		r.logger.Error("Failed to save session", "uuid", id, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context, id uuid.UUID) (*state.Session, error) {
	key := "session:" + id.String()
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			r.logger.Warn("Session not found", "uuid", id)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s state.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *RedisStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	key := "session:" + id.String()
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Character operations (Redis-backed)

func (r *RedisStorage) SaveCharacter(ctx context.Context, id uuid.UUID, ch *actor.Character) error {
	data, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	key := "character:" + id.String()
	if err := r.client.Set(ctx, key, string(data), characterTTL).Err(); err != nil {
		r.logger.Error("Failed to save character", "uuid", id, "error", err)
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadCharacter(ctx context.Context, id uuid.UUID) (*actor.Character, error) {
	key := "character:" + id.String()
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			r.logger.Warn("Character not found", "uuid", id)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load character: %w", err)
	}

	var ch actor.Character
	if err := json.Unmarshal([]byte(data), &ch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return &ch, nil
}

// Idempotency cache (Redis-backed, short TTL)

func idempotencyKey(sessionID uuid.UUID, key string) string {
	return "idem:" + sessionID.String() + ":" + key
}

func (r *RedisStorage) CacheResponse(ctx context.Context, sessionID uuid.UUID, key string, resp *chat.ActionResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal cached response: %w", err)
	}

	if err := r.client.Set(ctx, idempotencyKey(sessionID, key), string(data), idempotencyTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache response: %w", err)
	}
	return nil
}

func (r *RedisStorage) CachedResponse(ctx context.Context, sessionID uuid.UUID, key string) (*chat.ActionResponse, error) {
	data, err := r.client.Get(ctx, idempotencyKey(sessionID, key)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached response: %w", err)
	}

	var resp chat.ActionResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached response: %w", err)
	}
	return &resp, nil
}

// Scenario operations (filesystem-backed)

func (r *RedisStorage) ListScenarios(ctx context.Context) (map[string]string, error) {
	scenariosDir := filepath.Join(r.dataDir, "scenarios")
	scenarios := make(map[string]string)

	err := filepath.WalkDir(scenariosDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		file, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("Failed to read scenario file", "path", path, "error", err)
			return nil
		}

		var s scenario.Scenario
		if err := json.Unmarshal(file, &s); err != nil {
			r.logger.Warn("Failed to unmarshal scenario file", "path", path, "error", err)
			return nil
		}

		scenarios[s.Name] = filepath.Base(path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	return scenarios, nil
}

func (r *RedisStorage) GetScenario(ctx context.Context, filename string) (*scenario.Scenario, error) {
	path := filepath.Join(r.dataDir, "scenarios", filename)

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("scenario not found: %s", filename)
		}
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s scenario.Scenario
	if err := json.Unmarshal(file, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", filename, err)
	}

	return &s, nil
}
