package ledger

import (
	"sync"

	"pomopro/internal/core/model"
)

// MemoryStore keeps the log and statistics in memory.
type MemoryStore struct {
	mu      sync.Mutex
	records []model.SessionRecord
	stats   model.Statistics
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (store *MemoryStore) LoadSessionLog() ([]model.SessionRecord, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]model.SessionRecord(nil), store.records...), nil
}

func (store *MemoryStore) AppendSessionRecord(record model.SessionRecord) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.records = append(store.records, record)
	return nil
}

func (store *MemoryStore) LoadStatistics() (model.Statistics, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.stats, nil
}

func (store *MemoryStore) SaveStatistics(stats model.Statistics) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.stats = stats
	return nil
}
