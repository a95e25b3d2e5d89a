package app

import (
	"context"
	"strings"

	"booking_front/internal/domain"
)

// SeedService loads a catalogue of hotels into the hotel service, skipping
// hotels the index already knows by name.
type SeedService struct {
	hotels  domain.HotelsAPI
	listing *ListingService
}

func NewSeedService(h domain.HotelsAPI, l *ListingService) *SeedService {
	return &SeedService{hotels: h, listing: l}
}

// SeedHotel creates f unless a hotel with the same name is already listed.
// It reports whether a hotel was created.
func (s *SeedService) SeedHotel(ctx context.Context, token string, f HotelForm) (bool, error) {
	hits, err := s.listing.Search(ctx, f.Name, 0, MaxPageSize)
	if err != nil {
		return false, err
	}
	for _, h := range hits {
		if strings.EqualFold(strings.TrimSpace(h.Name), strings.TrimSpace(f.Name)) {
			return false, nil
		}
	}
	if _, err := s.hotels.CreateHotel(ctx, token, ParseHotelForm(f)); err != nil {
		return false, backendError("seed hotel", err)
	}
	return true, nil
}
