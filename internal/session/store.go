package session

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"booking_front/internal/adapters/observability"
	"booking_front/internal/domain"
)

var guest = &domain.Session{Role: domain.RoleGuest}

// snapshot pairs the browser session id with the session it names.
type snapshot struct {
	id string
	s  *domain.Session
}

// Store owns the session of one browser. Reads see either the previous or
// the new id and triple in full, never a mix.
type Store struct {
	repo domain.SessionRepository
	ttl  time.Duration
	cur  atomic.Pointer[snapshot]
}

func newStore(id string, repo domain.SessionRepository, ttl time.Duration, s *domain.Session) *Store {
	st := &Store{repo: repo, ttl: ttl}
	if s == nil || !s.Authenticated() {
		s = guest
	}
	st.cur.Store(&snapshot{id: id, s: s})
	return st
}

// ID is the browser session id (the cookie value). It changes on Login.
func (s *Store) ID() string { return s.cur.Load().id }

// Login replaces the session and persists it under a fresh id; the record of
// the previous id is removed. The in-memory state changes only once
// persistence succeeded.
func (s *Store) Login(ctx context.Context, token, userID string, role domain.Role) error {
	if token == "" {
		return &domain.ValidationError{Field: "token", Reason: "required"}
	}
	if userID == "" {
		return &domain.ValidationError{Field: "user_id", Reason: "required"}
	}
	if role == "" || role == domain.RoleGuest {
		role = domain.RoleCustomer
	}
	next := &domain.Session{Token: token, UserID: userID, Role: role}

	ttl := s.ttl
	if exp := ReadClaims(token).ExpiresAt; !exp.IsZero() {
		if d := time.Until(exp); d > 0 && d < ttl {
			ttl = d
		}
	}
	id, err := newID()
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, id, *next, ttl); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	prev := s.cur.Swap(&snapshot{id: id, s: next})
	if err := s.repo.Delete(ctx, prev.id); err != nil {
		log.Warn().Err(err).Msg("previous session record not removed")
	}
	observability.ObserveSession("login")
	log.Info().Str("user_id", userID).Str("role", string(role)).Dur("ttl", ttl).Msg("session started")
	return nil
}

// Logout clears the session in memory first, so requests issued from now on
// carry no token, then removes the persisted record.
func (s *Store) Logout(ctx context.Context) error {
	var prev *snapshot
	for {
		prev = s.cur.Load()
		if s.cur.CompareAndSwap(prev, &snapshot{id: prev.id, s: guest}) {
			break
		}
	}
	observability.ObserveSession("logout")
	if prev.s.Authenticated() {
		log.Info().Str("user_id", prev.s.UserID).Msg("session ended")
	}
	if err := s.repo.Delete(ctx, prev.id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Current returns the session and false when unauthenticated.
func (s *Store) Current() (domain.Session, bool) {
	p := s.cur.Load()
	if !p.s.Authenticated() {
		return *guest, false
	}
	return *p.s, true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Token is the bearer token to use for a request issued now, or "".
func (s *Store) Token() string {
	cur, _ := s.Current()
	return cur.Token
}

func (s *Store) Role() domain.Role {
	cur, _ := s.Current()
	return cur.Role
}
