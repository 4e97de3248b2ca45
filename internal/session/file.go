package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/common/metrics"
	"pizza-storefront/internal/models"
)

const backendFile = "file"

// FileStore persists the session as a small JSON document of string keys,
// mirroring browser local storage.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger logger.Logger
}

func NewFileStore(path string, log logger.Logger) *FileStore {
	return &FileStore{path: path, logger: log}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(_ context.Context) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		record(backendFile, metrics.SessionEventError)
		return nil, err
	}
	record(backendFile, metrics.SessionEventLoad)
	return decode(s.logger, backendFile, values[models.SessionUserKey], values[models.SessionTokenKey]), nil
}

func (s *FileStore) Set(_ context.Context, user *models.User, token string) error {
	values, err := encode(user, token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// other keys in the document are left alone
	existing, err := s.read()
	if err != nil {
		record(backendFile, metrics.SessionEventError)
		return err
	}
	for k, v := range values {
		existing[k] = v
	}
	if err := s.write(existing); err != nil {
		record(backendFile, metrics.SessionEventError)
		return err
	}
	record(backendFile, metrics.SessionEventSet)
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		record(backendFile, metrics.SessionEventError)
		return err
	}
	delete(values, models.SessionUserKey)
	delete(values, models.SessionTokenKey)

	if len(values) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			record(backendFile, metrics.SessionEventError)
			return fmt.Errorf("remove session file: %w", err)
		}
	} else if err := s.write(values); err != nil {
		record(backendFile, metrics.SessionEventError)
		return err
	}

	record(backendFile, metrics.SessionEventClear)
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		s.logger.Warn("Session file is not valid JSON, ignoring it", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return map[string]string{}, nil
	}
	return values, nil
}

// write replaces the document atomically.
func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("create session temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
