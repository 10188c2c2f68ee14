package product

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[uuid.UUID]Product
}

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[uuid.UUID]Product)}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Create(ctx context.Context, owner uuid.UUID, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[owner]; ok {
		return ErrExists
	}

	s.m[owner] = p
	return nil
}

func (s *MemStore) Get(ctx context.Context, owner uuid.UUID) (Product, error) {
	s.mu.RLock()
	p, ok := s.m[owner]
	s.mu.RUnlock()

	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (s *MemStore) Update(ctx context.Context, owner uuid.UUID, name, description *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.m[owner]
	if !ok {
		return ErrNotFound
	}

	if name != nil {
		p.Name = *name
	}
	if description != nil {
		p.Description = *description
	}

	s.m[owner] = p
	return nil
}

func (s *MemStore) Delete(ctx context.Context, owner uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[owner]; !ok {
		return ErrNotFound
	}

	delete(s.m, owner)
	return nil
}
