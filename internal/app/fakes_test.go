package app_test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"booking_front/internal/app"
	"booking_front/internal/domain"
	"booking_front/internal/session"
)

// ---- fakes ----

type fakeHotels struct {
	mu sync.Mutex

	hotels       map[string]domain.HotelRecord
	failHotel    map[string]error
	reservations map[string][]domain.Reservation
	listErr      error
	mutateErr    error

	calls        int
	getCalls     int
	tokens       []string
	created      []domain.HotelPayload
	updated      map[string]domain.HotelPayload
	deleted      []string
	reservedReqs []domain.ReservationRequest

	delay    time.Duration
	inflight int
	maxIn    int
}

func newFakeHotels() *fakeHotels {
	return &fakeHotels{
		hotels:       map[string]domain.HotelRecord{},
		failHotel:    map[string]error{},
		reservations: map[string][]domain.Reservation{},
		updated:      map[string]domain.HotelPayload{},
	}
}

func (f *fakeHotels) track(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.tokens = append(f.tokens, token)
}

func (f *fakeHotels) GetHotel(ctx context.Context, token, id string) (domain.HotelRecord, error) {
	f.track(token)
	f.mu.Lock()
	f.getCalls++
	f.inflight++
	if f.inflight > f.maxIn {
		f.maxIn = f.inflight
	}
	delay := f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inflight--
	if err := f.failHotel[id]; err != nil {
		return domain.HotelRecord{}, err
	}
	h, ok := f.hotels[id]
	if !ok {
		return domain.HotelRecord{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeHotels) CreateHotel(ctx context.Context, token string, p domain.HotelPayload) (string, error) {
	f.track(token)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	f.created = append(f.created, p)
	return "new-" + strings.ToLower(strings.ReplaceAll(p.Name, " ", "-")), nil
}

func (f *fakeHotels) UpdateHotel(ctx context.Context, token, id string, p domain.HotelPayload) error {
	f.track(token)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.updated[id] = p
	return nil
}

func (f *fakeHotels) DeleteHotel(ctx context.Context, token, id string) error {
	f.track(token)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeHotels) CreateReservation(ctx context.Context, token string, r domain.ReservationRequest) (string, error) {
	f.track(token)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	f.reservedReqs = append(f.reservedReqs, r)
	return "res-1", nil
}

func (f *fakeHotels) ListUserReservations(ctx context.Context, token, userID string) ([]domain.Reservation, error) {
	f.track(token)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.reservations[userID], nil
}

func (f *fakeHotels) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSearch struct {
	mu      sync.Mutex
	records []domain.IndexRecord
	err     error
	queries []domain.SearchQuery
}

// Search matches q against the name, case-insensitively; "*" matches all.
func (f *fakeSearch) Search(ctx context.Context, q domain.SearchQuery) ([]domain.IndexRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.IndexRecord
	for _, r := range f.records {
		name, _ := r.Name.First()
		if q.Q == "*" || strings.Contains(strings.ToLower(name), strings.ToLower(q.Q)) {
			out = append(out, r)
		}
	}
	if q.Offset >= len(out) {
		return []domain.IndexRecord{}, nil
	}
	out = out[q.Offset:]
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeSearch) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeUsers struct {
	res      domain.LoginResult
	loginErr error
	regErr   error
	calls    int
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	f.calls++
	return f.res, f.loginErr
}

func (f *fakeUsers) Register(ctx context.Context, username, password string) error {
	f.calls++
	return f.regErr
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*domain.HotelRecord); ok {
		*d = v.(domain.HotelRecord)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// ---- helpers ----

func newSession(t *testing.T) *session.Store {
	t.Helper()
	st, err := session.NewManager(session.NewMemoryRepo(), time.Hour).New()
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return st
}

func loggedIn(t *testing.T, userID string, role domain.Role) *session.Store {
	t.Helper()
	st := newSession(t)
	if err := st.Login(context.Background(), "tok-"+userID, userID, role); err != nil {
		t.Fatalf("login: %v", err)
	}
	return st
}

// indexOf renders a catalogue entry the way the search index stores it:
// every field wrapped in a sequence.
func indexOf(id string, f app.HotelForm) domain.IndexRecord {
	p := app.ParseHotelForm(f)
	am := make([]any, 0, len(p.Amenities))
	for _, a := range p.Amenities {
		am = append(am, a)
	}
	return domain.IndexRecord{
		ID:          domain.Scalar(id),
		Name:        domain.List(p.Name),
		Address:     domain.List(p.Address),
		City:        domain.List(p.City),
		State:       domain.List(p.State),
		Rating:      domain.List(float64(p.Rating)),
		Amenities:   domain.List(am...),
		Descripcion: domain.List(p.Description[0]),
	}
}

func demoIndex() []domain.IndexRecord {
	out := make([]domain.IndexRecord, 0, len(app.DemoCatalogue))
	for i, f := range app.DemoCatalogue {
		out = append(out, indexOf(strconv.Itoa(i+1), f))
	}
	return out
}
