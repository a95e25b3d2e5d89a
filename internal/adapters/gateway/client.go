// internal/adapters/gateway/client.go
package gateway

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"booking_front/internal/adapters/observability"
	"booking_front/internal/domain"
)

type Options struct {
	Timeout time.Duration
	RPS     int
	// Retries applies to GET requests only, on network errors, 429 and 5xx.
	// Zero disables retries.
	Retries    int
	HTTPClient *http.Client
}

// Client is the shared transport for one backend service.
type Client struct {
	service string
	base    string
	hc      *http.Client
	rl      *rate.Limiter
	retries int
}

func NewClient(service, base string, o Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: invalid base url %q", service, base)
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.RPS <= 0 {
		o.RPS = 20
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	return &Client{
		service: service,
		base:    strings.TrimRight(u.String(), "/"),
		hc:      hc,
		rl:      rate.NewLimiter(rate.Limit(o.RPS), o.RPS),
		retries: o.Retries,
	}, nil
}

func (c *Client) Service() string { return c.service }
func (c *Client) Base() string    { return c.base }

// StatusError is a non-2xx answer from a backend.
type StatusError struct {
	Service string
	Method  string
	Path    string
	Status  int
	Message string // "error" or "message" field of a JSON body, if any
	Body    []byte
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s %s: status %d", e.Service, e.Method, e.Path, e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrBadRequest
	}
	return nil
}

// NetworkError covers transport failures and timeouts.
type NetworkError struct {
	Service string
	Method  string
	Path    string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Service, e.Method, e.Path, e.Err)
}
func (e *NetworkError) Unwrap() error        { return e.Err }
func (e *NetworkError) Is(target error) bool { return target == domain.ErrNetwork }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

type request struct {
	method   string
	path     string // escaped path below base
	endpoint string // route pattern used as metrics label
	query    url.Values
	token    string
	body     any
}

// do sends r and decodes a 2xx JSON body into out (when out is non-nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	var payload []byte
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: encode %s body: %w", c.service, r.endpoint, err)
		}
		payload = b
	}
	target := c.base + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	attempts := 1
	if r.method == http.MethodGet {
		attempts += c.retries
	}

	var (
		lastErr error
		wait    time.Duration // server-provided Retry-After of the previous attempt
	)
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if wait == 0 {
				wait = backoff(i - 1)
			}
			log.Debug().Str("service", c.service).Str("endpoint", r.endpoint).Int("attempt", i+1).Dur("wait", wait).Err(lastErr).Msg("retrying")
			if !sleepCtx(ctx, wait) {
				return &NetworkError{Service: c.service, Method: r.method, Path: r.path, Err: ctx.Err()}
			}
		}
		if err := c.rl.Wait(ctx); err != nil {
			return &NetworkError{Service: c.service, Method: r.method, Path: r.path, Err: err}
		}

		wait = 0

		// build a fresh request each attempt
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, r.method, target, body)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "booking-front/1.0")
		if r.token != "" {
			req.Header.Set("Authorization", "Bearer "+r.token)
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal(c.service, r.endpoint, 0, time.Since(start))
			lastErr = &NetworkError{Service: c.service, Method: r.method, Path: r.path, Err: err}
			if ctx.Err() != nil {
				return lastErr
			}
			continue
		}
		observability.ObserveExternal(c.service, r.endpoint, resp.StatusCode, time.Since(start))

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			err := decodeBody(resp, out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("%s: decode %s response: %w", c.service, r.endpoint, err)
			}
			return nil
		}

		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		lastErr = &StatusError{
			Service: c.service,
			Method:  r.method,
			Path:    r.path,
			Status:  resp.StatusCode,
			Message: errorMessage(b),
			Body:    b,
		}
		if !transient(resp.StatusCode) {
			return lastErr
		}
		// Prefer server-provided Retry-After; otherwise exponential backoff.
		wait = retryAfter(resp)
	}
	return lastErr
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func decodeBody(resp *http.Response, out any) error {
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}

// errorMessage extracts {"error": "..."} or {"message": "..."} from a body.
func errorMessage(b []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		return strings.TrimSpace(string(b))
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

func transient(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
