package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/common/metrics"
	"pizza-storefront/internal/models"
)

const backendRedis = "redis"

// RedisStore keeps the session under <prefix>user and <prefix>token.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration, log logger.Logger) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl, logger: log}
}

func (s *RedisStore) userKey() string  { return s.prefix + models.SessionUserKey }
func (s *RedisStore) tokenKey() string { return s.prefix + models.SessionTokenKey }

func (s *RedisStore) Get(ctx context.Context) (*models.Session, error) {
	vals, err := s.client.MGet(ctx, s.userKey(), s.tokenKey()).Result()
	if err != nil {
		record(backendRedis, metrics.SessionEventError)
		return nil, fmt.Errorf("load session: %w", err)
	}
	record(backendRedis, metrics.SessionEventLoad)

	rawUser, _ := vals[0].(string)
	token, _ := vals[1].(string)
	return decode(s.logger, backendRedis, rawUser, token), nil
}

func (s *RedisStore) Set(ctx context.Context, user *models.User, token string) error {
	values, err := encode(user, token)
	if err != nil {
		return err
	}

	if s.ttl > 0 {
		_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.userKey(), values[models.SessionUserKey], s.ttl)
			pipe.Set(ctx, s.tokenKey(), values[models.SessionTokenKey], s.ttl)
			return nil
		})
	} else {
		err = s.client.MSet(ctx,
			s.userKey(), values[models.SessionUserKey],
			s.tokenKey(), values[models.SessionTokenKey],
		).Err()
	}
	if err != nil {
		record(backendRedis, metrics.SessionEventError)
		return fmt.Errorf("store session: %w", err)
	}

	record(backendRedis, metrics.SessionEventSet)
	s.logger.Debug("Session stored", map[string]interface{}{
		"userId": user.ID.String(),
		"token":  logger.MaskToken(token),
	})
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.userKey(), s.tokenKey()).Err(); err != nil {
		record(backendRedis, metrics.SessionEventError)
		return fmt.Errorf("clear session: %w", err)
	}
	record(backendRedis, metrics.SessionEventClear)
	return nil
}
