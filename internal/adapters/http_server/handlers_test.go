package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"strings"
	"sync"
	"testing"
	"time"

	httpserver "booking_front/internal/adapters/http_server"
	"booking_front/internal/app"
	"booking_front/internal/domain"
	"booking_front/internal/session"
)

// ---- fakes ----

type stubUsers struct {
	accounts map[string]domain.LoginResult // by username; password is "pw"
	taken    map[string]bool
}

func (u *stubUsers) Login(_ context.Context, username, password string) (domain.LoginResult, error) {
	res, ok := u.accounts[username]
	if !ok || password != "pw" {
		return domain.LoginResult{}, domain.ErrUnauthorized
	}
	return res, nil
}

func (u *stubUsers) Register(_ context.Context, username, _ string) error {
	if u.taken[username] {
		return domain.ErrConflict
	}
	return nil
}

type stubHotels struct {
	mu           sync.Mutex
	hotels       map[string]domain.HotelRecord
	reservations map[string][]domain.Reservation
	getErr       error
	created      []domain.HotelPayload
	booked       []domain.ReservationRequest
}

func (h *stubHotels) GetHotel(_ context.Context, _, id string) (domain.HotelRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.getErr != nil {
		return domain.HotelRecord{}, h.getErr
	}
	rec, ok := h.hotels[id]
	if !ok {
		return domain.HotelRecord{}, domain.ErrNotFound
	}
	return rec, nil
}

func (h *stubHotels) CreateHotel(_ context.Context, _ string, p domain.HotelPayload) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.created = append(h.created, p)
	return "new-1", nil
}

func (h *stubHotels) UpdateHotel(context.Context, string, string, domain.HotelPayload) error {
	return nil
}

func (h *stubHotels) DeleteHotel(context.Context, string, string) error { return nil }

func (h *stubHotels) CreateReservation(_ context.Context, _ string, r domain.ReservationRequest) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.booked = append(h.booked, r)
	return "r-1", nil
}

func (h *stubHotels) ListUserReservations(_ context.Context, _, userID string) ([]domain.Reservation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]domain.Reservation(nil), h.reservations[userID]...), nil
}

type stubSearch struct{ recs []domain.IndexRecord }

func (s *stubSearch) Search(context.Context, domain.SearchQuery) ([]domain.IndexRecord, error) {
	return s.recs, nil
}

// ---- harness ----

type harness struct {
	srv    *httptest.Server
	hotels *stubHotels
	search *stubSearch
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	users := &stubUsers{
		accounts: map[string]domain.LoginResult{
			"ana":   {Token: "tok-ana", UserID: "7", Role: domain.RoleCustomer},
			"admin": {Token: "tok-admin", UserID: "1", Role: domain.RoleAdministrator},
		},
		taken: map[string]bool{"ana": true},
	}
	hotels := &stubHotels{
		hotels: map[string]domain.HotelRecord{"h1": {ID: "h1", Name: "Vista Sol"}},
		reservations: map[string][]domain.Reservation{"7": {
			{ID: "r1", HotelID: "h1", UserID: "7"},
			{ID: "r2", HotelID: "gone", UserID: "7"},
		}},
	}
	search := &stubSearch{recs: []domain.IndexRecord{{
		ID: domain.Scalar("h1"), Name: domain.List("Vista Sol"), City: domain.List("Mendoza"),
		Amenities: domain.List("wifi", "pool"),
	}}}

	listing := app.NewListingService(search)
	queries := app.NewHotelQueries(hotels, nil, 0)
	h := &httpserver.Handlers{
		Auth:         app.NewAuthService(users),
		Listing:      listing,
		Hotels:       queries,
		Booking:      app.NewBookingService(hotels),
		Reservations: app.NewReservationAggregator(hotels, queries, 4),
		Admin:        app.NewAdminCoordinator(hotels, listing, queries),
	}
	s := httpserver.New(session.NewManager(session.NewMemoryRepo(), time.Hour), httpserver.CookieConfig{})
	s.MountHandlers(h)
	srv := httptest.NewServer(s.Mux())
	t.Cleanup(srv.Close)
	return &harness{srv: srv, hotels: hotels, search: search}
}

func (h *harness) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func do(t *testing.T, c *http.Client, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func login(t *testing.T, h *harness, c *http.Client, user string) {
	t.Helper()
	resp := do(t, c, http.MethodPost, h.srv.URL+"/api/login", `{"username":"`+user+`","password":"pw"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status=%d", user, resp.StatusCode)
	}
}

// ---- tests ----

func TestLogin_SetsCookieAndSessionSurvivesRequests(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	resp := do(t, c, http.MethodPost, h.srv.URL+"/api/login", `{"username":"ana","password":"pw"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var sid *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == httpserver.CookieName {
			sid = ck
		}
	}
	if sid == nil || !sid.HttpOnly {
		t.Fatalf("want HttpOnly sid cookie, got %+v", sid)
	}

	resp = do(t, c, http.MethodGet, h.srv.URL+"/api/session", "")
	var view struct {
		Authenticated bool   `json:"authenticated"`
		UserID        string `json:"user_id"`
		Role          string `json:"role"`
		Token         string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if !view.Authenticated || view.UserID != "7" || view.Role != "customer" {
		t.Fatalf("unexpected session view %+v", view)
	}
	if view.Token != "" {
		t.Fatal("token must not reach the browser")
	}
}

func sidOf(resp *http.Response) string {
	for _, ck := range resp.Cookies() {
		if ck.Name == httpserver.CookieName {
			return ck.Value
		}
	}
	return ""
}

func TestLogin_IssuesFreshSessionID(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	before := sidOf(do(t, c, http.MethodGet, h.srv.URL+"/api/session", ""))
	if before == "" {
		t.Fatal("guest request must receive a sid cookie")
	}
	after := sidOf(do(t, c, http.MethodPost, h.srv.URL+"/api/login", `{"username":"ana","password":"pw"}`))
	if after == "" || after == before {
		t.Fatalf("sid not rotated on login: before=%q after=%q", before, after)
	}

	// the pre-login id is worthless now
	stale := &http.Client{}
	req, _ := http.NewRequest(http.MethodGet, h.srv.URL+"/api/reservations", nil)
	req.AddCookie(&http.Cookie{Name: httpserver.CookieName, Value: before})
	resp, err := stale.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("stale sid: status=%d", resp.StatusCode)
	}
}

func TestLogin_BadPasswordIs401Problem(t *testing.T) {
	h := newHarness(t)
	resp := do(t, h.client(t), http.MethodPost, h.srv.URL+"/api/login", `{"username":"ana","password":"nope"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type=%q", ct)
	}
}

func TestLogout_ReturnsToGuest(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	login(t, h, c, "ana")

	if resp := do(t, c, http.MethodPost, h.srv.URL+"/api/logout", ""); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout status=%d", resp.StatusCode)
	}
	if resp := do(t, c, http.MethodGet, h.srv.URL+"/api/reservations", ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("reservations after logout: status=%d", resp.StatusCode)
	}
}

func TestRegister_TakenUsernameIs409(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	if resp := do(t, c, http.MethodPost, h.srv.URL+"/api/register", `{"username":"ana","password":"x"}`); resp.StatusCode != http.StatusConflict {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if resp := do(t, c, http.MethodPost, h.srv.URL+"/api/register", `{"username":"bea","password":"x"}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if resp := do(t, c, http.MethodPost, h.srv.URL+"/api/register", `{"username":"","password":"x"}`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestReservations_GuestIs401(t *testing.T) {
	h := newHarness(t)
	if resp := do(t, h.client(t), http.MethodGet, h.srv.URL+"/api/reservations", ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestReservations_MissingHotelGetsPlaceholder(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	login(t, h, c, "ana")

	resp := do(t, c, http.MethodGet, h.srv.URL+"/api/reservations", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var out []domain.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 reservations, got %d", len(out))
	}
	if out[0].HotelName != "Vista Sol" || out[1].HotelName != app.HotelNameUnavailable {
		t.Fatalf("unexpected names: %q, %q", out[0].HotelName, out[1].HotelName)
	}
}

func TestBook_ValidatesDatesAndSendsSessionUser(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	if resp := do(t, c, http.MethodPost, h.srv.URL+"/api/hotels/h1/reservations", `{"start_date":"2026-01-01","end_date":"2026-01-03"}`); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("guest booking: status=%d", resp.StatusCode)
	}

	login(t, h, c, "ana")
	if resp := do(t, c, http.MethodPost, h.srv.URL+"/api/hotels/h1/reservations", `{"start_date":"2026-01-03","end_date":"2026-01-01"}`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("reversed dates: status=%d", resp.StatusCode)
	}
	if resp := do(t, c, http.MethodPost, h.srv.URL+"/api/hotels/h1/reservations", `{"start_date":"2026-01-01","end_date":"2026-01-03"}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("booking: status=%d", resp.StatusCode)
	}
	if len(h.hotels.booked) != 1 || h.hotels.booked[0].UserID != "7" || h.hotels.booked[0].HotelID != "h1" {
		t.Fatalf("unexpected booking requests %+v", h.hotels.booked)
	}
}

func TestListHotels_ETagRoundTrip(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	resp := do(t, c, http.MethodGet, h.srv.URL+"/api/hotels?q=vista", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var out []domain.HotelSummary
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Amenities != "wifi, pool" || out[0].City != "Mendoza" {
		t.Fatalf("unexpected listing %+v", out)
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req, _ := http.NewRequest(http.MethodGet, h.srv.URL+"/api/hotels?q=vista", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := c.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Fatalf("want 304, got %d", resp2.StatusCode)
	}
}

func TestListHotels_NonFiniteRatingDoesNotBlankListing(t *testing.T) {
	h := newHarness(t)
	h.search.recs = append(h.search.recs,
		domain.IndexRecord{ID: domain.Scalar("h2"), Name: domain.List("Roto"), Rating: domain.List("NaN")},
		domain.IndexRecord{ID: domain.Scalar("h3"), Name: domain.List("Exagerado"), Rating: domain.Scalar(9.5)},
	)

	resp := do(t, h.client(t), http.MethodGet, h.srv.URL+"/api/hotels", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if resp.Header.Get("ETag") == "" {
		t.Fatal("missing ETag")
	}
	var out []domain.HotelSummary
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("want 3 rows, got %d", len(out))
	}
	if out[1].Rating != 0 || out[2].Rating != app.MaxRating {
		t.Fatalf("unexpected ratings %v, %v", out[1].Rating, out[2].Rating)
	}
}

func TestListHotels_BadLimitIs400(t *testing.T) {
	h := newHarness(t)
	if resp := do(t, h.client(t), http.MethodGet, h.srv.URL+"/api/hotels?limit=ten", ""); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestGetHotel_NotFoundAndBackendFailure(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	if resp := do(t, c, http.MethodGet, h.srv.URL+"/api/hotels/h1", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if resp := do(t, c, http.MethodGet, h.srv.URL+"/api/hotels/nope", ""); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	h.hotels.mu.Lock()
	h.hotels.getErr = errors.Join(domain.ErrNetwork, errors.New("connection refused"))
	h.hotels.mu.Unlock()
	if resp := do(t, c, http.MethodGet, h.srv.URL+"/api/hotels/h1", ""); resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestAdmin_RoleGate(t *testing.T) {
	h := newHarness(t)
	body := `{"name":"Nuevo","address":"Calle 1","city":"Salta","state":"Salta","rating":"4.2","amenities":"wifi, spa","description":"quiet"}`

	if resp := do(t, h.client(t), http.MethodPost, h.srv.URL+"/api/admin/hotels", body); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("guest: status=%d", resp.StatusCode)
	}

	customer := h.client(t)
	login(t, h, customer, "ana")
	if resp := do(t, customer, http.MethodPost, h.srv.URL+"/api/admin/hotels", body); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer: status=%d", resp.StatusCode)
	}

	admin := h.client(t)
	login(t, h, admin, "admin")
	resp := do(t, admin, http.MethodPost, h.srv.URL+"/api/admin/hotels", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("admin: status=%d", resp.StatusCode)
	}
	var res app.AdminResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.ID != "new-1" || len(res.Listing) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(h.hotels.created) != 1 || len(h.hotels.created[0].Amenities) != 2 {
		t.Fatalf("unexpected payloads %+v", h.hotels.created)
	}
}
