package catalog

import (
	"context"
	"slices"
	"sync"
)

// Store is the read-only source of products. List preserves catalog order.
type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, bool, error)
}

type MemStore struct {
	mu    sync.RWMutex
	order []string
	m     map[string]Product
}

// NewMemStore returns the static course catalog.
func NewMemStore() *MemStore {
	return NewMemStoreWith(seedProducts())
}

func NewMemStoreWith(products []Product) *MemStore {
	s := &MemStore{m: make(map[string]Product, len(products))}
	for _, p := range products {
		if _, dup := s.m[p.ID]; dup {
			continue
		}
		s.order = append(s.order, p.ID)
		s.m[p.ID] = p
	}
	return s
}

func (s *MemStore) Ping(context.Context) error { return nil }

func (s *MemStore) List(context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.m[id]))
	}
	return out, nil
}

func (s *MemStore) Get(_ context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	if !ok {
		return Product{}, false, nil
	}
	return clone(p), true, nil
}

func clone(p Product) Product {
	p.Tags = slices.Clone(p.Tags)
	return p
}
