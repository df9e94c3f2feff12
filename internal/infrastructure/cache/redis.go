package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
	"github.com/clarityhub/clarityhub/pkg/config"
)

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// StatusEntry is the cached processing status for one transcript
type StatusEntry struct {
	Status    entities.ProcessingStatus `json:"status"`
	Error     string                    `json:"error,omitempty"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// StatusStore mirrors transcript processing statuses into Redis so the
// poll endpoint can answer without a database round trip. Entries expire
// after the configured TTL; a miss falls back to the database.
type StatusStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatusStore creates a status store with the given entry TTL
func NewStatusStore(client *redis.Client, ttl time.Duration) *StatusStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &StatusStore{client: client, ttl: ttl}
}

func statusKey(transcriptID uuid.UUID) string {
	return "transcript:status:" + transcriptID.String()
}

// SetStatus writes the current processing status for a transcript
func (s *StatusStore) SetStatus(ctx context.Context, transcriptID uuid.UUID, status entities.ProcessingStatus, errMsg string) error {
	entry := StatusEntry{
		Status:    status,
		Error:     errMsg,
		UpdatedAt: time.Now(),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal status entry: %w", err)
	}
	return s.client.Set(ctx, statusKey(transcriptID), payload, s.ttl).Err()
}

// GetStatus returns the cached status, or (nil, nil) on a cache miss
func (s *StatusStore) GetStatus(ctx context.Context, transcriptID uuid.UUID) (*StatusEntry, error) {
	payload, err := s.client.Get(ctx, statusKey(transcriptID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry StatusEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status entry: %w", err)
	}
	return &entry, nil
}
