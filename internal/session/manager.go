package session

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"booking_front/internal/adapters/observability"
	"booking_front/internal/domain"
)

// Manager opens and creates per-browser session stores.
type Manager struct {
	repo domain.SessionRepository
	ttl  time.Duration
}

func NewManager(repo domain.SessionRepository, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{repo: repo, ttl: ttl}
}

// Open restores the session persisted under id. Unknown or expired ids give a
// guest store bound to the same id; malformed ids get a fresh one.
func (m *Manager) Open(ctx context.Context, id string) (*Store, error) {
	if !validID(id) {
		return m.New()
	}
	s, ok, err := m.repo.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	observability.ObserveSession("open")
	if !ok {
		return newStore(id, m.repo, m.ttl, nil), nil
	}
	return newStore(id, m.repo, m.ttl, &s), nil
}

// New allocates a guest store with a random id. Nothing is persisted until Login.
func (m *Manager) New() (*Store, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	observability.ObserveSession("new")
	return newStore(id, m.repo, m.ttl, nil), nil
}

func newID() (string, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}

func validID(id string) bool {
	if len(id) != 32 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
