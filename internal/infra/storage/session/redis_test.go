package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t, time.Hour)

	sess := &domain.Session{
		UserID: 77,
		State:  domain.StateConfirm,
		Fields: domain.BookingFields{
			Service:     "🔩 Шиномонтаж",
			FullName:    "Айбек",
			Phone:       "+77771234567",
			CarMake:     "Kia",
			CarYear:     2021,
			BookingDate: time.Date(2024, time.May, 25, 0, 0, 0, 0, time.UTC),
			BookingTime: "14:00",
		},
		UpdatedAt: time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, 77)
	require.NoError(t, err)
	assert.Equal(t, sess.State, got.State)
	assert.Equal(t, sess.Fields.Phone, got.Fields.Phone)
	assert.Equal(t, sess.Fields.BookingTime, got.Fields.BookingTime)
	assert.True(t, sess.Fields.BookingDate.Equal(got.Fields.BookingDate))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Delete(ctx, 77))
	_, err = store.Get(ctx, 77)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, 30*time.Minute)

	require.NoError(t, store.Save(ctx, domain.NewSession(5, time.Now())))
	assert.Equal(t, 30*time.Minute, mr.TTL(key(5)))

	mr.FastForward(31 * time.Minute)

	_, err := store.Get(ctx, 5)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_Errors(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, 0)

	require.NoError(t, mr.Set(key(9), "not json"))
	_, err := store.Get(ctx, 9)
	assert.ErrorIs(t, err, ErrDecode)

	assert.ErrorIs(t, store.Save(ctx, &domain.Session{UserID: 1, State: domain.StateCancelled}), ErrInvalidSession)

	mr.Close()
	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrBackend)
}
