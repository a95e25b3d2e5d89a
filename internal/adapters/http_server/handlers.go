package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"booking_front/internal/adapters/gateway"
	"booking_front/internal/app"
	"booking_front/internal/domain"
	"booking_front/internal/session"
)

const maxBody = 1 << 20

type Handlers struct {
	Auth         *app.AuthService
	Listing      *app.ListingService
	Hotels       *app.HotelQueries
	Booking      *app.BookingService
	Reservations *app.ReservationAggregator
	Admin        *app.AdminCoordinator
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// sessionView is what the browser learns about its session. The token stays server side.
type sessionView struct {
	Authenticated bool        `json:"authenticated"`
	UserID        string      `json:"user_id,omitempty"`
	Role          domain.Role `json:"role"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type bookingRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
		r.Post("/register", h.register)
		r.Get("/session", h.currentSession)

		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/{id}", h.getHotel)
		r.Post("/hotels/{id}/reservations", h.book)
		r.Get("/reservations", h.listReservations)

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireRole(domain.RoleAdministrator))
			r.Post("/hotels", h.createHotel)
			r.Put("/hotels/{id}", h.updateHotel)
			r.Delete("/hotels/{id}", h.deleteHotel)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingIdentity):
		writeProblem(w, http.StatusUnauthorized, "Unauthenticated", "sign in first")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeProblem(w, http.StatusUnauthorized, "Invalid Credentials", "username or password is wrong")
	case errors.Is(err, domain.ErrUsernameTaken):
		writeProblem(w, http.StatusConflict, "Username Taken", "choose another username")
	case domain.IsValidation(err):
		writeProblem(w, http.StatusBadRequest, "Invalid Input", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthenticated", "the backend rejected the session token")
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", err.Error())
	case domain.IsLoad(err), errors.Is(err, domain.ErrNetwork), gateway.StatusOf(err) >= 500:
		log.Warn().Err(err).Str("route", routeOf(r)).Msg("backend failure")
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", "a backend service failed")
	default:
		log.Error().Err(err).Str("route", routeOf(r)).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "response could not be encoded")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		return &domain.ValidationError{Field: "body", Reason: "malformed JSON", Err: err}
	}
	return nil
}

func storeOf(r *http.Request) (*session.Store, bool) { return session.FromContext(r.Context()) }

func viewOf(st *session.Store) sessionView {
	cur, ok := st.Current()
	if !ok {
		return sessionView{Role: domain.RoleGuest}
	}
	return sessionView{Authenticated: true, UserID: cur.UserID, Role: cur.Role}
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	st, ok := storeOf(r)
	if !ok {
		writeProblem(w, http.StatusInternalServerError, "Session Error", "no session")
		return
	}
	var c credentials
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.Auth.Login(r.Context(), st, c.Username, c.Password); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(st))
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	st, ok := storeOf(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := h.Auth.Logout(r.Context(), st); err != nil {
		// local state is already guest
		log.Warn().Err(err).Msg("session record delete failed")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Auth.Register(r.Context(), c.Username, c.Password); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"username": c.Username})
}

func (h *Handlers) currentSession(w http.ResponseWriter, r *http.Request) {
	st, ok := storeOf(r)
	if !ok {
		writeJSON(w, http.StatusOK, sessionView{Role: domain.RoleGuest})
		return
	}
	writeJSON(w, http.StatusOK, viewOf(st))
}

func intParam(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &domain.ValidationError{Field: name, Reason: fmt.Sprintf("%q is not an integer", s)}
	}
	return n, nil
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	offset, err := intParam(r, "offset")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := intParam(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Listing.Search(r.Context(), r.URL.Query().Get("q"), offset, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeWithETag(w, r, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	var token string
	if st, ok := storeOf(r); ok {
		token = st.Token()
	}
	hotel, err := h.Hotels.Detail(r.Context(), token, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeWithETag(w, r, hotel)
}

func (h *Handlers) book(w http.ResponseWriter, r *http.Request) {
	st, ok := storeOf(r)
	if !ok || !st.IsAuthenticated() {
		writeError(w, r, domain.ErrMissingIdentity)
		return
	}
	var b bookingRequest
	if err := decodeJSON(r, &b); err != nil {
		writeError(w, r, err)
		return
	}
	id, err := h.Booking.Book(r.Context(), st, chi.URLParam(r, "id"), b.StartDate, b.EndDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	st, ok := storeOf(r)
	if !ok {
		writeError(w, r, domain.ErrMissingIdentity)
		return
	}
	out, err := h.Reservations.ForSession(r.Context(), st)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	st, _ := storeOf(r)
	var f app.HotelForm
	if err := decodeJSON(r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.Admin.CreateHotel(r.Context(), st.Token(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	st, _ := storeOf(r)
	var f app.HotelForm
	if err := decodeJSON(r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.Admin.UpdateHotel(r.Context(), st.Token(), chi.URLParam(r, "id"), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	st, _ := storeOf(r)
	res, err := h.Admin.DeleteHotel(r.Context(), st.Token(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
