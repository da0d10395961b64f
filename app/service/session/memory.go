package session

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Data
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]Data)}
}

func (s *memoryStore) Load(_ context.Context, subscriberID string) (Data, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := s.sessions[subscriberID]
	data.Turns = append([]Turn(nil), data.Turns...)

	return data, nil
}

func (s *memoryStore) Save(_ context.Context, subscriberID string, data Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[subscriberID] = data

	return nil
}
