// Package session_store provides the server-side session registry. A
// session exists while its entry does; logout deletes the entry, which
// invalidates any cookie still carrying the session id.
package session_store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned when a session id has no live entry.
var ErrSessionNotFound = errors.New("session not found")

// Store is the session registry interface.
type Store interface {
	// Put registers a session id for a user with the given lifetime.
	Put(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	// Get returns the user id a live session belongs to.
	Get(ctx context.Context, sessionID string) (uint, error)
	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore keeps sessions in redis with a TTL per entry.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore creates a redis-backed session store.
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

// Put registers a session in redis.
func (s *RedisStore) Put(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(sessionID), uint64(userID), ttl).Err(); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

// Get looks a session up in redis.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (uint, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Uint64()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("reading session: %w", err)
	}
	return uint(val), nil
}

// Delete removes a session from redis.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

type memoryEntry struct {
	userID    uint
	expiresAt time.Time
}

// MemoryStore is an in-process session store used by tests and by
// single-node deployments without redis.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
	}
}

// Put registers a session in memory.
func (s *MemoryStore) Put(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = memoryEntry{
		userID:    userID,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Get looks a session up in memory, expiring it lazily.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, sessionID)
		return 0, ErrSessionNotFound
	}
	return entry.userID, nil
}

// Delete removes a session from memory.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
