package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

// MemoryStore хранит сессии в памяти процесса.
// Наружу всегда отдаются копии, поэтому вызывающий код не может изменить сессию без Save
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*domain.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore создает хранилище. ttl = 0 отключает истечение сессий
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get возвращает копию сессии или ErrSessionNotFound.
// Истекшая сессия удаляется при чтении
func (s *MemoryStore) Get(_ context.Context, userID int64) (*domain.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	if sess.IsExpired(s.now(), s.ttl) {
		s.mu.Lock()
		// Сессию могли перезаписать между RUnlock и Lock
		if cur, ok := s.sessions[userID]; ok && cur.IsExpired(s.now(), s.ttl) {
			delete(s.sessions, userID)
		}
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	return sess.Clone(), nil
}

// Save сохраняет копию сессии
func (s *MemoryStore) Save(_ context.Context, sess *domain.Session) error {
	if sess == nil || !sess.State.IsValid() {
		return fmt.Errorf("%w: Save - state is not storable", ErrInvalidSession)
	}

	s.mu.Lock()
	s.sessions[sess.UserID] = sess.Clone()
	s.mu.Unlock()

	return nil
}

// Delete удаляет сессию; отсутствие сессии не ошибка
func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()

	return nil
}

// Count количество хранимых сессий
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions), nil
}

// Sweep удаляет сессии, которые простаивали дольше ttl, и возвращает их количество
func (s *MemoryStore) Sweep(_ context.Context) (int, error) {
	if s.ttl <= 0 {
		return 0, nil
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.IsExpired(now, s.ttl) {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed, nil
}
