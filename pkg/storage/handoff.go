package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matst80/listing-filters/pkg/filter"
	"github.com/matst80/listing-filters/pkg/persistance"
	"github.com/redis/go-redis/v9"
)

const handoffPrefix = "filter_handoff:"

type LocalEntry struct {
	Expires time.Time
	Data    []byte
}

// HandoffStore keeps filter states handed over from a landing page search
// box to a results page. Entries live in redis for the ttl and are cached
// in process for reads on the instance that wrote them.
type HandoffStore struct {
	client   *redis.Client
	ttl      time.Duration
	localTTL time.Duration
	mu       sync.RWMutex
	memCache map[string]LocalEntry
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewHandoffStore(client *redis.Client, ttl time.Duration) *HandoffStore {
	return &HandoffStore{
		client:   client,
		ttl:      ttl,
		localTTL: min(ttl, time.Minute),
		memCache: make(map[string]LocalEntry),
	}
}

// Save stores the state and returns the token to load it with.
func (h *HandoffStore) Save(ctx context.Context, s filter.State) (string, error) {
	data, err := persistance.Encode(s)
	if err != nil {
		return "", err
	}
	token := uuid.NewString()
	if err = h.client.Set(ctx, handoffPrefix+token, data, h.ttl).Err(); err != nil {
		return "", fmt.Errorf("store handoff: %w", err)
	}
	now := time.Now()
	h.mu.Lock()
	for key, entry := range h.memCache {
		if entry.Expires.Before(now) {
			delete(h.memCache, key)
		}
	}
	h.memCache[token] = LocalEntry{Expires: now.Add(h.localTTL), Data: data}
	h.mu.Unlock()
	return token, nil
}

// Load returns the state stored under token, ErrNotFound when the token is
// unknown, malformed or expired.
func (h *HandoffStore) Load(ctx context.Context, token string, fallback filter.Status) (filter.State, error) {
	if _, err := uuid.Parse(token); err != nil {
		return filter.DefaultState(fallback), ErrNotFound
	}
	if data, ok := h.local(token); ok {
		return persistance.Decode(data, fallback)
	}
	data, err := h.client.Get(ctx, handoffPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return filter.DefaultState(fallback), ErrNotFound
	}
	if err != nil {
		return filter.DefaultState(fallback), fmt.Errorf("load handoff: %w", err)
	}
	return persistance.Decode(data, fallback)
}

func (h *HandoffStore) local(token string) ([]byte, bool) {
	h.mu.RLock()
	entry, found := h.memCache[token]
	h.mu.RUnlock()
	if !found {
		return nil, false
	}
	if entry.Expires.Before(time.Now()) {
		h.mu.Lock()
		delete(h.memCache, token)
		h.mu.Unlock()
		return nil, false
	}
	return entry.Data, true
}

// Ping checks the redis connection.
func (h *HandoffStore) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

func (h *HandoffStore) Close() error {
	return h.client.Close()
}
