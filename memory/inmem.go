package memory

import (
	"context"
	"sync"
)

// InMemoryStore is a DocumentStore kept entirely in process memory. It is
// the default store when Redis is not configured.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[string]Document)}
}

func (s *InMemoryStore) Put(_ context.Context, doc Document) error {
	if doc.ID == "" || doc.Content == "" {
		return ErrInvalidDocument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

func (s *InMemoryStore) Search(_ context.Context, query string, filter map[string]string, limit int) ([]Scored, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []Scored
	for _, doc := range s.docs {
		if !matchesFilter(doc, filter) {
			continue
		}
		if sim := score(query, doc.Content); sim > 0 {
			results = append(results, Scored{Document: doc, Similarity: sim})
		}
	}
	return rank(results, limit), nil
}
