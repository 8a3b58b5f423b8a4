package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTTL keeps an untouched draft around for a season of planning.
const DefaultTTL = 90 * 24 * time.Hour

// RedisSlots stores drafts as Redis strings with a sliding TTL.
type RedisSlots struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

func NewRedisSlots(client *redis.Client, ttl time.Duration) *RedisSlots {
	if client == nil {
		panic("drafts: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisSlots{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("maldives.internal.drafts"),
	}
}

func (s *RedisSlots) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "drafts.get", trace.WithAttributes(attribute.String("draft.key", key)))
	defer span.End()

	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		span.RecordError(err)
		return nil, fmt.Errorf("drafts: failed to load %s: %w", key, err)
	}
	return data, nil
}

func (s *RedisSlots) Put(ctx context.Context, key string, value []byte) error {
	ctx, span := s.tracer.Start(ctx, "drafts.put", trace.WithAttributes(attribute.String("draft.key", key)))
	defer span.End()

	if err := s.redis.Set(ctx, key, value, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("drafts: failed to persist %s: %w", key, err)
	}
	return nil
}

// PutIfExists uses SET XX, refreshing the TTL only when the key is present.
func (s *RedisSlots) PutIfExists(ctx context.Context, key string, value []byte) error {
	ctx, span := s.tracer.Start(ctx, "drafts.put_if_exists", trace.WithAttributes(attribute.String("draft.key", key)))
	defer span.End()

	ok, err := s.redis.SetXX(ctx, key, value, s.ttl).Result()
	if errors.Is(err, redis.Nil) {
		return ErrEmpty
	}
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("drafts: failed to persist %s: %w", key, err)
	}
	if !ok {
		return ErrEmpty
	}
	return nil
}

func (s *RedisSlots) Delete(ctx context.Context, key string) error {
	ctx, span := s.tracer.Start(ctx, "drafts.delete", trace.WithAttributes(attribute.String("draft.key", key)))
	defer span.End()

	if err := s.redis.Del(ctx, key).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("drafts: failed to delete %s: %w", key, err)
	}
	return nil
}
