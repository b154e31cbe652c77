package store

import (
	"context"
	"sync"

	"github.com/fruitstore/fruit-api/internal/fruit"
)

// MemoryStore holds the document in process memory. Used for tests and
// throwaway instances.
type MemoryStore struct {
	mu  sync.RWMutex
	doc *fruit.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith returns a store that already holds a copy of doc.
func NewMemoryStoreWith(doc *fruit.Document) *MemoryStore {
	m := &MemoryStore{}
	_ = m.Save(context.Background(), doc)
	return m
}

func (m *MemoryStore) Backend() string { return "memory" }

func (m *MemoryStore) Load(ctx context.Context) (*fruit.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc == nil {
		return fruit.NewDocument(), nil
	}
	return m.doc.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, doc *fruit.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := doc.Clone()
	c.Normalize()
	m.doc = c
	return nil
}

func (m *MemoryStore) Exists(ctx context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc != nil, nil
}
