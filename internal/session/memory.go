package session

import (
	"context"
	"sync"

	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/common/metrics"
	"pizza-storefront/internal/models"
)

const backendMemory = "memory"

// MemoryStore keeps the session for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	logger logger.Logger
}

func NewMemoryStore(log logger.Logger) *MemoryStore {
	return &MemoryStore{values: make(map[string]string), logger: log}
}

func (s *MemoryStore) Get(_ context.Context) (*models.Session, error) {
	s.mu.RLock()
	rawUser, token := s.values[models.SessionUserKey], s.values[models.SessionTokenKey]
	s.mu.RUnlock()

	record(backendMemory, metrics.SessionEventLoad)
	return decode(s.logger, backendMemory, rawUser, token), nil
}

func (s *MemoryStore) Set(_ context.Context, user *models.User, token string) error {
	values, err := encode(user, token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()

	record(backendMemory, metrics.SessionEventSet)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.values = make(map[string]string)
	s.mu.Unlock()

	record(backendMemory, metrics.SessionEventClear)
	return nil
}
