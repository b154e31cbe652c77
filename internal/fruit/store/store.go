// Package store persists the fruit Document. Every backend reads and writes
// the whole document at once; there are no partial updates.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fruitstore/fruit-api/internal/fruit"
	"github.com/fruitstore/fruit-api/pkg/metrics"
)

// ErrCorrupt is wrapped by StorageError when persisted data is not a JSON object.
var ErrCorrupt = errors.New("persisted document is not a JSON object")

// StorageError reports an I/O failure or unreadable persisted data.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s store %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store loads and saves the complete Document.
type Store interface {
	// Load returns the persisted document, or an empty one when nothing is stored yet.
	Load(ctx context.Context) (*fruit.Document, error)
	// Save replaces the persisted document.
	Save(ctx context.Context, doc *fruit.Document) error
	// Exists reports whether a document has been persisted.
	Exists(ctx context.Context) (bool, error)
	// Backend names the implementation for logs and metrics.
	Backend() string
}

// Seed writes the starter categories when the store holds no document yet.
// It reports whether anything was written.
func Seed(ctx context.Context, s Store) (bool, error) {
	ok, err := s.Exists(ctx)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	doc := fruit.NewDocument()
	doc.Categories = append(doc.Categories, fruit.StarterCategories...)
	if err := s.Save(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}

// decode parses a persisted document. Missing lists decode as empty.
func decode(backend string, b []byte) (*fruit.Document, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return nil, &StorageError{Backend: backend, Op: "load", Err: ErrCorrupt}
	}
	doc := fruit.NewDocument()
	if err := json.Unmarshal(b, doc); err != nil {
		return nil, &StorageError{Backend: backend, Op: "load", Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}
	doc.Normalize()
	return doc, nil
}

// encode renders the document as indented JSON.
func encode(backend string, doc *fruit.Document) ([]byte, error) {
	c := doc.Clone()
	c.Normalize()
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, &StorageError{Backend: backend, Op: "save", Err: err}
	}
	return append(b, '\n'), nil
}

// Instrument wraps s so that every operation is counted in metrics.StoreOperations.
func Instrument(s Store) Store {
	return &instrumented{Store: s}
}

type instrumented struct {
	Store
}

func (i *instrumented) Load(ctx context.Context) (*fruit.Document, error) {
	doc, err := i.Store.Load(ctx)
	i.observe("load", err)
	return doc, err
}

func (i *instrumented) Save(ctx context.Context, doc *fruit.Document) error {
	err := i.Store.Save(ctx, doc)
	i.observe("save", err)
	return err
}

func (i *instrumented) Exists(ctx context.Context) (bool, error) {
	ok, err := i.Store.Exists(ctx)
	i.observe("exists", err)
	return ok, err
}

func (i *instrumented) observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.StoreOperations.WithLabelValues(i.Store.Backend(), op, result).Inc()
}
