package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"booking_front/internal/domain"
)

// MatchAll is the query that returns every indexed hotel.
const MatchAll = "*"

// Search is the client for the search-index service.
type Search struct{ c *Client }

func NewSearch(base string, o Options) (*Search, error) {
	c, err := NewClient("search", base, o)
	if err != nil {
		return nil, err
	}
	return &Search{c: c}, nil
}

// Search returns raw index records; callers normalize them.
func (s *Search) Search(ctx context.Context, q domain.SearchQuery) ([]domain.IndexRecord, error) {
	term := strings.TrimSpace(q.Q)
	if term == "" {
		term = MatchAll
	}
	v := url.Values{}
	v.Set("q", term)
	v.Set("offset", strconv.Itoa(q.Offset))
	v.Set("limit", strconv.Itoa(q.Limit))

	var out []domain.IndexRecord
	err := s.c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/search",
		endpoint: "/search",
		query:    v,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
