package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
	"github.com/m04kA/SMC-BookingBot/pkg/logger"
)

type gaugeStub struct {
	mu   sync.Mutex
	last int
	sets int
}

func (g *gaugeStub) SetActiveSessions(n int) {
	g.mu.Lock()
	g.last, g.sets = n, g.sets+1
	g.mu.Unlock()
}

func (g *gaugeStub) snapshot() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last, g.sets
}

func TestSweeper_SweepOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC)

	store := NewMemoryStore(30 * time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, domain.NewSession(1, now.Add(-time.Hour))))
	require.NoError(t, store.Save(ctx, domain.NewSession(2, now.Add(-time.Minute))))
	require.NoError(t, store.Save(ctx, domain.NewSession(3, now)))

	gauge := &gaugeStub{}
	NewSweeper(store, gauge, time.Minute, logger.NewNop()).SweepOnce(ctx)

	last, _ := gauge.snapshot()
	assert.Equal(t, 2, last)
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	gauge := &gaugeStub{}
	sweeper := NewSweeper(store, gauge, 5*time.Millisecond, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, sets := gauge.snapshot()
		return sets >= 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
