package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/siteback/internal/common"
)

// MemoryStore keeps sessions in process memory; they are lost on restart.
// With ttl == 0 sessions never expire.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(ctx context.Context, accountID int64) (string, error) {
	// Randomness is drawn before taking the lock.
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s := Session{AccountID: accountID, CreatedAt: m.now()}

	m.mu.Lock()
	m.sessions[token] = s
	m.mu.Unlock()

	return token, nil
}

func (m *MemoryStore) Resolve(ctx context.Context, token string) (int64, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return 0, common.ErrorNotFound
	}

	if m.expired(s, m.now()) {
		m.mu.Lock()
		// Only drop the entry we looked at; the token may have been destroyed meanwhile.
		if cur, ok := m.sessions[token]; ok && cur == s {
			delete(m.sessions, token)
		}
		m.mu.Unlock()
		return 0, common.ErrSessionExpired
	}

	return s.AccountID, nil
}

func (m *MemoryStore) Destroy(ctx context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Sweep(ctx context.Context) (int, error) {
	if m.ttl <= 0 {
		return 0, nil
	}

	now := m.now()
	removed := 0

	m.mu.Lock()
	defer m.mu.Unlock()

	for token, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) Len(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions), nil
}

func (m *MemoryStore) expired(s Session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.CreatedAt) >= m.ttl
}
