package session

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"pizza-storefront/internal/common/config"
	"pizza-storefront/internal/common/logger"
)

// New builds the store selected by cfg.Backend. rdb is only used by the
// redis backend and may be nil otherwise.
func New(cfg config.SessionConfig, rdb redis.Cmdable, log logger.Logger) (Store, error) {
	switch cfg.Backend {
	case config.SessionBackendMemory:
		return NewMemoryStore(log), nil
	case config.SessionBackendFile, "":
		return NewFileStore(cfg.Path, log), nil
	case config.SessionBackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis session backend requires a redis client")
		}
		return NewRedisStore(rdb, cfg.KeyPrefix, config.GetDuration(cfg.TTL), log), nil
	default:
		return nil, fmt.Errorf("unsupported session backend %q", cfg.Backend)
	}
}
