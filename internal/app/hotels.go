package app

import (
	"context"
	"time"

	"booking_front/internal/domain"
)

// HotelQueries reads canonical hotel records, with an optional cache in front.
type HotelQueries struct {
	hotels   domain.HotelsAPI
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHotelQueries(h domain.HotelsAPI, c domain.Cache, ttl time.Duration) *HotelQueries {
	return &HotelQueries{hotels: h, cache: c, cacheTTL: ttl}
}

func hotelKey(id string) string { return "hotel:" + id }

// GetHotel returns the canonical record; errors come back unwrapped.
func (s *HotelQueries) GetHotel(ctx context.Context, token, id string) (domain.HotelRecord, error) {
	key := hotelKey(id)
	var h domain.HotelRecord
	if s.cache != nil && s.cacheTTL > 0 {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return copyHotel(h), nil
		}
	}
	h, err := s.hotels.GetHotel(ctx, token, id)
	if err != nil {
		return domain.HotelRecord{}, err
	}
	if s.cache != nil && s.cacheTTL > 0 {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return copyHotel(h), nil
}

// Detail is GetHotel for the detail view: failures become LoadError.
func (s *HotelQueries) Detail(ctx context.Context, token, id string) (domain.HotelRecord, error) {
	h, err := s.GetHotel(ctx, token, id)
	if err != nil {
		return domain.HotelRecord{}, &domain.LoadError{Op: "hotel " + id, Err: err}
	}
	return h, nil
}

// Invalidate drops the cached record after a mutation.
func (s *HotelQueries) Invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(id))
	}
}

// copy slices so callers cannot alias a cached value
func copyHotel(in domain.HotelRecord) domain.HotelRecord {
	out := in
	if in.Amenities != nil {
		out.Amenities = append([]string(nil), in.Amenities...)
	}
	if in.Description != nil {
		out.Description = append([]string(nil), in.Description...)
	}
	return out
}
