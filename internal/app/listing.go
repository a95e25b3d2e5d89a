package app

import (
	"context"
	"strings"

	"booking_front/internal/domain"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MatchAll        = "*"
)

// ListingService serves the search-backed hotel listing.
type ListingService struct {
	search domain.SearchAPI
}

func NewListingService(s domain.SearchAPI) *ListingService {
	return &ListingService{search: s}
}

// Search queries the index and normalizes each hit. Empty q matches everything.
func (s *ListingService) Search(ctx context.Context, q string, offset, limit int) ([]domain.HotelSummary, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		q = MatchAll
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	recs, err := s.search.Search(ctx, domain.SearchQuery{Q: q, Offset: offset, Limit: limit})
	if err != nil {
		return nil, &domain.LoadError{Op: "hotel listing", Err: err}
	}
	return NormalizeAll(recs), nil
}
