package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalogo-tienda/logx"
)

type memorySession struct {
	pages   map[int][]byte
	expires time.Time
}

// MemoryStore is a PageStore for a single instance. Expired sessions are
// dropped by a background sweep and never returned by Get.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

// NewMemoryStore creates a store and starts its sweeper. Call Close to stop it.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := newMemoryStore(ttl, time.Now)
	go s.sweepLoop(ttl / 2)
	return s
}

func newMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      now,
		stop:     make(chan struct{}),
	}
}

// Put implements PageStore. The pages map is copied.
func (s *MemoryStore) Put(_ context.Context, session string, pages map[int][]byte) error {
	if session == "" {
		return fmt.Errorf("session id is required")
	}
	copied := make(map[int][]byte, len(pages))
	for n, data := range pages {
		copied[n] = data
	}
	s.mu.Lock()
	s.sessions[session] = memorySession{pages: copied, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

// Get implements PageStore
func (s *MemoryStore) Get(_ context.Context, session string, page int) ([]byte, error) {
	s.mu.RLock()
	sess, ok := s.sessions[session]
	s.mu.RUnlock()
	if !ok || !s.now().Before(sess.expires) {
		return nil, ErrSessionNotFound
	}
	data, ok := sess.pages[page]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrPageNotFound, page)
	}
	return data, nil
}

// Sweep removes expired sessions and returns how many were dropped
func (s *MemoryStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.expires) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) sweepLoop(every time.Duration) {
	if every < time.Second {
		every = time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logx.Debug().Int("sessions", n).Msg("🧹 Expired PNG sessions removed")
			}
		case <-s.stop:
			return
		}
	}
}

// Close stops the background sweep
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

var _ PageStore = (*MemoryStore)(nil)
