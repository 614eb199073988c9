package session

import (
	"context"
	"sync"

	"shop-service/internal/model"
)

// MemoryStore is the default single-process session store.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]model.Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]model.Cart)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (model.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// hand out a copy so callers can't mutate the stored cart in place
	return append(model.Cart(nil), s.carts[key]...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, cart model.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[key] = append(model.Cart(nil), cart...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, key)
	return nil
}
