package caching

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// memoryCacheService is the default, used when no Redis address is
// configured. Entries expire lazily on read.
type memoryCacheService struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryCacheService() CacheService {
	return &memoryCacheService{entries: map[string]memoryEntry{}}
}

func (m *memoryCacheService) get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired() {
		delete(m.entries, key)
		return nil, false
	}
	return e.data, true
}

func (m *memoryCacheService) set(key string, data []byte, ttl time.Duration) {
	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
}

func (m *memoryCacheService) GetJSON(_ context.Context, key string, out any) error {
	data, ok := m.get(key)
	if !ok {
		return ErrMiss
	}
	return json.Unmarshal(data, out)
}

func (m *memoryCacheService) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.set(key, data, ttl)
	return nil
}

func (m *memoryCacheService) InvalidateMetrics(_ context.Context) error {
	prefix := MetricsKey("")
	m.mu.Lock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	m.mu.Unlock()
	return nil
}
