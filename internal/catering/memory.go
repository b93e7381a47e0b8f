package catering

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps submissions in process. Used when no database is configured.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string]*Submission
	policy DedupPolicy
}

func NewMemoryStore(policy DedupPolicy) *MemoryStore {
	return &MemoryStore{
		data:   make(map[string]*Submission),
		policy: policy,
	}
}

func (m *MemoryStore) Reserve(ctx context.Context, key string, now time.Time) (*Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.data[key]; ok && m.policy.live(existing, now) {
		cp := *existing
		return &cp, nil
	}

	m.data[key] = &Submission{
		Key:       key,
		Status:    SubmissionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.evict(now)
	return nil, nil
}

func (m *MemoryStore) Complete(ctx context.Context, key string, result []byte, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.data[key]
	if !ok {
		return fmt.Errorf("memory store: %w: %s", ErrSubmissionNotFound, key)
	}
	s.Status = SubmissionCompleted
	s.Result = append([]byte(nil), result...)
	s.UpdatedAt = now
	return nil
}

func (m *MemoryStore) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.data[key]; ok && s.Status == SubmissionPending {
		delete(m.data, key)
	}
	return nil
}

// evict drops records that no longer block anything. Caller holds mu.
func (m *MemoryStore) evict(now time.Time) {
	for k, s := range m.data {
		if !m.policy.live(s, now) {
			delete(m.data, k)
		}
	}
}
