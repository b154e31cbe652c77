package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fruitstore/fruit-api/internal/fruit"
	"github.com/fruitstore/fruit-api/internal/fruit/store"
)

// Service defines the fruit and category operations used by the handler layer.
// Every call loads the whole document; mutations save it back in full.
type Service interface {
	ListFruits(ctx context.Context, search, category string) ([]fruit.Fruit, error)
	GetFruit(ctx context.Context, id int) (*fruit.Fruit, error)
	CreateFruit(ctx context.Context, req *fruit.CreateFruitRequest) (*fruit.Fruit, error)
	// UpdateFruit applies req to the fruit. A nil req means the body carried no data.
	UpdateFruit(ctx context.Context, id int, req *fruit.UpdateFruitRequest) (*fruit.Fruit, error)
	DeleteFruit(ctx context.Context, id int) (*fruit.Fruit, error)
	FruitsByCategory(ctx context.Context, name string) ([]fruit.Fruit, error)

	ListCategories(ctx context.Context) ([]fruit.CategoryCount, error)
	CreateCategory(ctx context.Context, name string) (string, error)
	DeleteCategory(ctx context.Context, name string) (string, error)

	// Ping checks that the document can be loaded.
	Ping(ctx context.Context) error
}

// Option configures the service.
type Option func(*service)

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService returns a Service persisting through st.
func NewService(st store.Store, opts ...Option) Service {
	s := &service{
		store: st,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// service serializes load→mutate→save sequences so concurrent requests in
// this process cannot lose each other's writes.
type service struct {
	mu    sync.RWMutex
	store store.Store
	now   func() time.Time
}

func (s *service) load(ctx context.Context) (*fruit.Document, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return doc, nil
}

func (s *service) save(ctx context.Context, doc *fruit.Document) error {
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (s *service) ListFruits(ctx context.Context, search, category string) ([]fruit.Fruit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return fruit.Filter(doc.Fruits, search, category), nil
}

func (s *service) GetFruit(ctx context.Context, id int) (*fruit.Fruit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := doc.FruitIndex(id)
	if i < 0 {
		return nil, ErrFruitNotFound
	}
	f := doc.Fruits[i]
	return &f, nil
}

func (s *service) CreateFruit(ctx context.Context, req *fruit.CreateFruitRequest) (*fruit.Fruit, error) {
	if req == nil || req.Name == nil {
		return nil, &ValidationError{Message: "Name is required"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if req.Category != nil {
		if err := checkCategory(doc, *req.Category); err != nil {
			return nil, err
		}
	}
	f := req.NewFruit(fruit.NextID(doc.Fruits), s.now())
	doc.Fruits = append(doc.Fruits, f)
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *service) UpdateFruit(ctx context.Context, id int, req *fruit.UpdateFruitRequest) (*fruit.Fruit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := doc.FruitIndex(id)
	if i < 0 {
		return nil, ErrFruitNotFound
	}
	if req == nil {
		return nil, &ValidationError{Message: "No data provided"}
	}
	if err := checkCategory(doc, req.EffectiveCategory(doc.Fruits[i].Category)); err != nil {
		return nil, err
	}
	req.Apply(&doc.Fruits[i], s.now())
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	f := doc.Fruits[i]
	return &f, nil
}

func (s *service) DeleteFruit(ctx context.Context, id int) (*fruit.Fruit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := doc.FruitIndex(id)
	if i < 0 {
		return nil, ErrFruitNotFound
	}
	removed := doc.Fruits[i]
	doc.Fruits = append(doc.Fruits[:i], doc.Fruits[i+1:]...)
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	return &removed, nil
}

func (s *service) FruitsByCategory(ctx context.Context, name string) ([]fruit.Fruit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !doc.HasCategory(name) {
		return nil, ErrCategoryNotFound
	}
	return fruit.InCategory(doc.Fruits, name), nil
}

func (s *service) ListCategories(ctx context.Context) ([]fruit.CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return fruit.CategoryCounts(doc), nil
}

func (s *service) CreateCategory(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	if doc.HasCategory(name) {
		return "", &ConflictError{Message: "Category already exists"}
	}
	doc.Categories = append(doc.Categories, name)
	if err := s.save(ctx, doc); err != nil {
		return "", err
	}
	return name, nil
}

func (s *service) DeleteCategory(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	if !doc.HasCategory(name) {
		return "", ErrCategoryNotFound
	}
	if n := len(fruit.InCategory(doc.Fruits, name)); n > 0 {
		return "", &ConflictError{Message: fmt.Sprintf("Cannot delete category. %d fruit(s) are using this category", n)}
	}
	kept := doc.Categories[:0]
	for _, c := range doc.Categories {
		if c != name {
			kept = append(kept, c)
		}
	}
	doc.Categories = kept
	if err := s.save(ctx, doc); err != nil {
		return "", err
	}
	return name, nil
}

func (s *service) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := s.load(ctx)
	return err
}

// checkCategory accepts the empty category and any known category name.
func checkCategory(doc *fruit.Document, name string) error {
	if name == "" || doc.HasCategory(name) {
		return nil
	}
	return &ValidationError{Message: fmt.Sprintf("Category '%s' does not exist", name)}
}

// IsStorageError reports whether err came from the persistence layer.
func IsStorageError(err error) bool {
	var se *store.StorageError
	return errors.As(err, &se)
}
