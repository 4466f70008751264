// internal/domain/cart/session_store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/flowershop-backend/internal/config"
)

// SessionStore is the per-client key-value collaborator holding guest carts.
// Save is the explicit "mark changed" signal: EphemeralCart mutates its
// in-memory copy and the mutation only becomes visible once Save runs.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*SessionCart, error)
	Save(ctx context.Context, sessionID string, cart *SessionCart) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore stores guest carts as JSON blobs with a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a session store backed by Redis
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    config.SessionCartTTL,
	}
}

func sessionCartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Get retrieves the guest cart, returning an empty cart when none exists
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for guest cart")
	}

	data, err := s.client.Get(ctx, sessionCartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Items:     []SessionLine{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session cart: %w", err)
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(data), &sessionCart); err != nil {
		return nil, fmt.Errorf("failed to decode session cart: %w", err)
	}
	return &sessionCart, nil
}

// Save persists the guest cart and refreshes its expiration
func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, cart *SessionCart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode session cart: %w", err)
	}

	if err := s.client.Set(ctx, sessionCartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session cart: %w", err)
	}
	return nil
}

// Delete drops the guest cart key entirely
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionCartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session cart: %w", err)
	}
	return nil
}
