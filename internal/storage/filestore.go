package storage

import (
	"pomopro/internal/core/model"
)

// FileStore persists the ledger in a data directory: the session log as CSV and
// the statistics as YAML.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (store *FileStore) LoadSessionLog() ([]model.SessionRecord, error) {
	return LoadSessionLog(store.dir)
}

func (store *FileStore) AppendSessionRecord(record model.SessionRecord) error {
	return AppendSessionRecord(store.dir, record)
}

func (store *FileStore) LoadStatistics() (model.Statistics, error) {
	return LoadStatistics(store.dir)
}

func (store *FileStore) SaveStatistics(stats model.Statistics) error {
	return SaveStatistics(store.dir, stats)
}
