package verify

import (
	"context"
	"sync"
	"time"
)

type pendingEntry struct {
	reg       PendingRegistration
	expiresAt time.Time
}

// MemoryPendingStore 内存实现，用于测试和单机开发环境
type MemoryPendingStore struct {
	mu      sync.Mutex
	entries map[string]pendingEntry
	now     func() time.Time
}

var _ PendingStore = (*MemoryPendingStore)(nil)

func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{
		entries: make(map[string]pendingEntry),
		now:     time.Now,
	}
}

func (s *MemoryPendingStore) Put(_ context.Context, handle string, reg PendingRegistration, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[handle] = pendingEntry{
		reg:       reg,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryPendingStore) Get(_ context.Context, handle string) (PendingRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[handle]
	if !ok {
		return PendingRegistration{}, ErrPendingNotFound
	}
	if s.now().After(entry.expiresAt) {
		// 访问时惰性清理过期记录
		delete(s.entries, handle)
		return PendingRegistration{}, ErrPendingNotFound
	}
	return entry.reg, nil
}

func (s *MemoryPendingStore) Delete(_ context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, handle)
	return nil
}
