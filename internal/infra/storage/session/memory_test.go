package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	_, err := store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sess := domain.NewSession(1, time.Now())
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StateService, got.State)

	// Изменение копии не влияет на хранилище
	got.State = domain.StatePhone
	again, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StateService, again.State)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Delete(ctx, 1))
	require.NoError(t, store.Delete(ctx, 1))
	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_RejectsTerminalState(t *testing.T) {
	store := NewMemoryStore(0)

	err := store.Save(context.Background(), &domain.Session{UserID: 1, State: domain.StateBooked})
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.ErrorIs(t, store.Save(context.Background(), nil), ErrInvalidSession)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC)

	store := NewMemoryStore(30 * time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, domain.NewSession(1, now.Add(-time.Hour))))
	require.NoError(t, store.Save(ctx, domain.NewSession(2, now.Add(-10*time.Minute))))
	require.NoError(t, store.Save(ctx, domain.NewSession(3, now.Add(-2*time.Hour))))

	// Истекшая сессия не отдается при чтении
	_, err := store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = store.Get(ctx, 2)
	assert.NoError(t, err)
}

func TestMemoryStore_ConcurrentUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sess := domain.NewSession(id, time.Now())
			sess.Fields.Service = "svc"
			sess.State = domain.StateFullName
			assert.NoError(t, store.Save(ctx, sess))
			got, err := store.Get(ctx, id)
			assert.NoError(t, err)
			assert.Equal(t, id, got.UserID)
		}(i)
	}
	wg.Wait()

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}
