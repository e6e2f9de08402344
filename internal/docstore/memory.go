package docstore

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore implements Store in process memory. It backs unit tests and
// local development, the way the mock storage service stands in for cloud
// object storage.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]interface{}),
	}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneData(doc), nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]interface{})
	}
	s.collections[collection][id] = cloneData(data)
	return nil
}

func (s *MemoryStore) Merge(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]interface{})
	}
	doc, ok := s.collections[collection][id]
	if !ok {
		doc = make(map[string]interface{})
		s.collections[collection][id] = doc
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (s *MemoryStore) QueryByField(ctx context.Context, collection, field string, value interface{}, limit int) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []Document
	for id, doc := range s.collections[collection] {
		if doc[field] == value {
			docs = append(docs, Document{ID: id, Data: cloneData(doc)})
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func cloneData(data map[string]interface{}) map[string]interface{} {
	clone := make(map[string]interface{}, len(data))
	for k, v := range data {
		clone[k] = v
	}
	return clone
}
