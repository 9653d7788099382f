package mastery

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// KeyPrefix starts every mastery key. Keys share the namespace of the
// browser storage the scores were first kept in.
const KeyPrefix = "mastery_"

// Key returns the storage key for the (verb, tense, pronoun) identity.
// Tier, group and sentence text are deliberately not part of it.
func Key(verb, tense, pronoun string) string {
	return KeyPrefix + verb + "_" + tense + "_" + pronoun
}

// Store is a persistent key-value mapping from mastery keys to scores.
type Store interface {
	// Get returns the stored score for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (score int, ok bool, err error)

	// Set stores value under key.
	Set(ctx context.Context, key string, value int) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Catalog is a Store that can also enumerate and bulk-delete its entries.
type Catalog interface {
	Store

	// List returns all entries whose key starts with prefix, sorted by key.
	List(ctx context.Context, prefix string) ([]Entry, error)

	// DeleteAll removes every entry whose key starts with prefix and
	// returns how many were removed.
	DeleteAll(ctx context.Context, prefix string) (int64, error)
}

// Entry is a single stored score.
type Entry struct {
	Key   string
	Score int
}

// MemoryStore is an in-memory Store used for tests and ephemeral sessions.
type MemoryStore struct {
	mu     sync.Mutex
	scores map[string]int
}

var _ Catalog = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scores: make(map[string]int)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.scores[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.scores, key)
	return nil
}

// List returns all entries whose key starts with prefix, sorted by key.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for k, v := range m.scores {
		if strings.HasPrefix(k, prefix) {
			out = append(out, Entry{Key: k, Score: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// DeleteAll removes every entry whose key starts with prefix.
func (m *MemoryStore) DeleteAll(_ context.Context, prefix string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.scores {
		if strings.HasPrefix(k, prefix) {
			delete(m.scores, k)
			n++
		}
	}
	return n, nil
}

// Score reads key from s and clamps it into range. Absent keys score 0.
func Score(ctx context.Context, s Store, key string) (int, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil {
		return MinScore, err
	}
	if !ok {
		return MinScore, nil
	}
	return Clamp(v), nil
}
