package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/casatartufo/tartufo/pkg/cache"
)

// Store persists session data keyed by the opaque session ID.
// Two drivers exist: Redis (production) and in-memory (fallback and tests).
type Store interface {
	Load(id string) (map[string]interface{}, bool)
	Save(id string, data map[string]interface{}, ttl time.Duration) error
	Delete(id string) error
}

var (
	storeMu     sync.RWMutex
	activeStore Store = NewMemoryStore()
)

// Use swaps the process-wide session store. Called once at boot.
func Use(s Store) {
	storeMu.Lock()
	defer storeMu.Unlock()
	activeStore = s
}

func current() Store {
	storeMu.RLock()
	defer storeMu.RUnlock()
	return activeStore
}

// ------------------- Redis driver -------------------

// RedisStore keeps sessions in Redis through pkg/cache, so a server restart
// does not log everyone out.
type RedisStore struct{}

func NewRedisStore() *RedisStore { return &RedisStore{} }

func redisKey(id string) string { return "tartufo:session:" + id }

func (s *RedisStore) Load(id string) (map[string]interface{}, bool) {
	var data map[string]interface{}
	if cache.Get(redisKey(id), &data) {
		return data, true
	}
	return nil, false
}

func (s *RedisStore) Save(id string, data map[string]interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return cache.Set(redisKey(id), json.RawMessage(raw), ttl)
}

func (s *RedisStore) Delete(id string) error {
	return cache.Del(redisKey(id))
}

// ------------------- Memory driver -------------------

type memoryEntry struct {
	data      map[string]interface{}
	expiresAt time.Time
}

// MemoryStore is a mutex-guarded in-process store. Sessions die with the
// process; good enough for local development and the test suite.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Load(id string) (map[string]interface{}, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, false
	}

	// Copy so callers never mutate the stored map in place.
	data := make(map[string]interface{}, len(e.data))
	for k, v := range e.data {
		data[k] = v
	}
	return data, true
}

func (s *MemoryStore) Save(id string, data map[string]interface{}, ttl time.Duration) error {
	copied := make(map[string]interface{}, len(data))
	for k, v := range data {
		copied[k] = v
	}

	s.mu.Lock()
	s.entries[id] = memoryEntry{data: copied, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}
