package store

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps documents in a map. For development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

// Get retrieves a document by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

// Put stores a document.
func (s *MemoryStore) Put(ctx context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	cp := *doc
	s.docs[doc.ID] = &cp
	return nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// List returns all documents, most recently updated first.
func (s *MemoryStore) List(ctx context.Context) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		cp := *doc
		docs = append(docs, &cp)
	}
	slices.SortFunc(docs, func(a, b *Document) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return docs, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
