package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"io/fs"
	"os"
	"sync"
)

// FileStore keeps committed addresses in memory and rewrites the JSON file
// after every change. It is used when no MongoDB is configured. It has no
// size limit, so it suits small installations only.
type FileStore struct {
	mu      sync.RWMutex
	records map[string]address.Record
	path    string
}

// NewFileStore loads path when it exists. A missing file is an empty store.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		records: make(map[string]address.Record),
		path:    path,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read address store: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("decode address store %s: %w", path, err)
	}
	return s, nil
}

func (s *FileStore) Save(_ context.Context, r address.Record) error {
	if r.ID == "" {
		return fmt.Errorf("save record: empty id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.records[r.ID]
	s.records[r.ID] = r
	if err := s.flushLocked(); err != nil {
		if existed {
			s.records[r.ID] = prev
		} else {
			delete(s.records, r.ID)
		}
		return err
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, id string) (address.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return address.Record{}, ErrRecordNotFound
	}
	return r, nil
}

func (s *FileStore) List(_ context.Context, limit int) ([]address.Record, error) {
	s.mu.RLock()
	records := make([]address.Record, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	s.mu.RUnlock()

	newestFirst(records)
	if limit = ClampLimit(limit); len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *FileStore) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

// flushLocked writes the whole store. Callers hold s.mu.
func (s *FileStore) flushLocked() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal address store: %w", err)
	}
	return writeFileAtomic(s.path, data)
}
