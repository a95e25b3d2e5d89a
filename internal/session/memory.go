package session

import (
	"context"
	"sync"
	"time"

	"booking_front/internal/domain"
)

type memEntry struct {
	s   domain.Session
	exp time.Time
}

// MemoryRepo keeps sessions in process memory, for dev and tests.
type MemoryRepo struct {
	mu  sync.Mutex
	m   map[string]memEntry
	now func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{m: map[string]memEntry{}, now: time.Now}
}

func (r *MemoryRepo) Save(ctx context.Context, id string, s domain.Session, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[id] = memEntry{s: s, exp: r.now().Add(ttl)}
	return nil
}

func (r *MemoryRepo) Load(ctx context.Context, id string) (domain.Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.m[id]
	if !ok {
		return domain.Session{}, false, nil
	}
	if r.now().After(e.exp) {
		delete(r.m, id)
		return domain.Session{}, false, nil
	}
	return e.s, true, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
	return nil
}
