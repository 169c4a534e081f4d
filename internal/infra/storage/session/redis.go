package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

const keyPrefix = "booking:session:"

// RedisStore хранит сессии в Redis; истечение через TTL ключа
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore создает хранилище. ttl = 0 - ключи без срока жизни
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

// Get возвращает сессию или ErrSessionNotFound
func (s *RedisStore) Get(ctx context.Context, userID int64) (*domain.Session, error) {
	data, err := s.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - user=%d: %v", ErrBackend, userID, err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%w: Get - user=%d: %v", ErrDecode, userID, err)
	}

	return &sess, nil
}

// Save сохраняет сессию и продлевает TTL
func (s *RedisStore) Save(ctx context.Context, sess *domain.Session) error {
	if sess == nil || !sess.State.IsValid() {
		return fmt.Errorf("%w: Save - state is not storable", ErrInvalidSession)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: Save - user=%d: %v", ErrEncode, sess.UserID, err)
	}

	if err := s.client.Set(ctx, key(sess.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - user=%d: %v", ErrBackend, sess.UserID, err)
	}

	return nil
}

// Delete удаляет сессию; отсутствие ключа не ошибка
func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - user=%d: %v", ErrBackend, userID, err)
	}
	return nil
}

// Count считает ключи сессий через SCAN
func (s *RedisStore) Count(ctx context.Context) (int, error) {
	count := 0
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("%w: Count: %v", ErrBackend, err)
	}
	return count, nil
}

// Sweep ничего не делает: Redis сам удаляет ключи по TTL
func (s *RedisStore) Sweep(_ context.Context) (int, error) {
	return 0, nil
}
