// Package session persists the authenticated user and bearer credential
// between storefront runs.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/common/metrics"
	"pizza-storefront/internal/models"
)

// Store is the session persistence contract. Get returns nil, nil when no
// session is stored. Concurrent Set and Clear calls are last-write-wins.
type Store interface {
	Get(ctx context.Context) (*models.Session, error)
	Set(ctx context.Context, user *models.User, token string) error
	Clear(ctx context.Context) error
}

// BearerToken adapts a Store to the credential lookup used by the API client.
func BearerToken(store Store) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		s, err := store.Get(ctx)
		if err != nil || s == nil {
			return "", err
		}
		return s.Token, nil
	}
}

func encode(user *models.User, token string) (map[string]string, error) {
	if user == nil {
		return nil, fmt.Errorf("session user is required")
	}
	if token == "" {
		return nil, fmt.Errorf("session token is required")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode session user: %w", err)
	}
	return map[string]string{
		models.SessionUserKey:  string(raw),
		models.SessionTokenKey: token,
	}, nil
}

// decode rebuilds a session from its stored keys. A partial or unreadable
// pair counts as no session.
func decode(log logger.Logger, backend, rawUser, token string) *models.Session {
	if rawUser == "" || token == "" {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		log.Warn("Discarding unreadable stored session", map[string]interface{}{
			"backend": backend,
			"error":   err.Error(),
		})
		return nil
	}
	return &models.Session{User: &user, Token: token}
}

func record(backend, event string) {
	metrics.SessionEvents.WithLabelValues(backend, event).Inc()
}
