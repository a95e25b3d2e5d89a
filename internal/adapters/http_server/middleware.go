package httpserver

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"booking_front/internal/adapters/observability"
	"booking_front/internal/domain"
	"booking_front/internal/session"
)

// CookieName carries the browser session id.
const CookieName = "sid"

func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, "timeout") }
}

// ---- status-recording ResponseWriter ----

type srw struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *srw) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *srw) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *srw) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &srw{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		observability.ObserveHTTP(routeOf(r), r.Method, sw.Status(), time.Since(start))
	})
}

// ---- Structured logging middleware ----

func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &srw{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			l.Info().
				Str("route", routeOf(r)).
				Str("method", r.Method).
				Int("status", sw.Status()).
				Dur("duration", time.Since(start)).
				Str("remote", remoteIP(r)).
				Str("ua", r.UserAgent()).
				Msg("http_request")
		})
	}
}

// ---- Session middleware ----

// cookieWriter sets the sid cookie right before the headers go out, so an id
// rotated by the handler (login) reaches the browser.
type cookieWriter struct {
	http.ResponseWriter
	st     *session.Store
	sent   string
	secure bool
	wrote  bool
}

func (w *cookieWriter) WriteHeader(code int) {
	if !w.wrote {
		w.wrote = true
		if id := w.st.ID(); id != w.sent {
			// no MaxAge: the cookie lives as long as the browser session
			http.SetCookie(w.ResponseWriter, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   w.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *cookieWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Sessions opens the browser session named by the sid cookie and puts it in
// the request context. A new id is issued when the cookie is missing or bad,
// and again whenever the handler rotates it.
func Sessions(m *session.Manager, cfg CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(CookieName); err == nil {
				id = c.Value
			}
			st, err := m.Open(r.Context(), id)
			if err != nil {
				log.Warn().Err(err).Msg("session load failed, continuing as guest")
				if st, err = m.New(); err != nil {
					writeProblem(w, http.StatusInternalServerError, "Session Error", "could not start a session")
					return
				}
			}
			cw := &cookieWriter{ResponseWriter: w, st: st, sent: id, secure: cfg.Secure}
			next.ServeHTTP(cw, r.WithContext(session.WithStore(r.Context(), st)))
			if !cw.wrote {
				cw.WriteHeader(http.StatusOK)
			}
		})
	}
}

// RequireRole rejects guests with 401 and other roles with 403.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st, ok := session.FromContext(r.Context())
			if !ok || !st.IsAuthenticated() {
				writeProblem(w, http.StatusUnauthorized, "Unauthenticated", "sign in first")
				return
			}
			if st.Role() != role {
				writeProblem(w, http.StatusForbidden, "Forbidden", string(role)+" only")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Picks first X-Forwarded-For IP, else X-Real-IP, else RemoteAddr host.
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
