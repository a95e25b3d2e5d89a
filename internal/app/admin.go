package app

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"booking_front/internal/domain"
)

// HotelForm is the admin form as typed: lists are comma separated and the
// rating is free text.
type HotelForm struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Rating      string `json:"rating"`
	Amenities   string `json:"amenities"`
	Description string `json:"description"`
}

// ParseHotelForm builds the wire payload. A rating that does not parse becomes
// NaN and is left to the hotel service to reject.
func ParseHotelForm(f HotelForm) domain.HotelPayload {
	rating, err := strconv.ParseFloat(strings.TrimSpace(f.Rating), 64)
	if err != nil {
		rating = math.NaN()
	}
	return domain.HotelPayload{
		Name:        strings.TrimSpace(f.Name),
		Address:     strings.TrimSpace(f.Address),
		City:        strings.TrimSpace(f.City),
		State:       strings.TrimSpace(f.State),
		Amenities:   splitList(f.Amenities),
		Description: splitList(f.Description),
		Rating:      domain.Rating(rating),
	}
}

// splitList splits on commas, trims and drops empty elements.
func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// AdminResult is what a successful mutation returns. Listing is nil when the
// refresh after the mutation failed.
type AdminResult struct {
	ID      string                `json:"id"`
	Listing []domain.HotelSummary `json:"listing"`
}

// AdminCoordinator mutates the hotel service and refreshes the index-backed
// listing afterwards. The index catches up on its own; nothing forces a reindex.
type AdminCoordinator struct {
	hotels  domain.HotelsAPI
	listing *ListingService
	queries *HotelQueries
}

func NewAdminCoordinator(h domain.HotelsAPI, l *ListingService, q *HotelQueries) *AdminCoordinator {
	return &AdminCoordinator{hotels: h, listing: l, queries: q}
}

func (c *AdminCoordinator) CreateHotel(ctx context.Context, token string, f HotelForm) (AdminResult, error) {
	id, err := c.hotels.CreateHotel(ctx, token, ParseHotelForm(f))
	if err != nil {
		return AdminResult{}, backendError("create hotel", err)
	}
	log.Info().Str("hotel_id", id).Msg("hotel created")
	return AdminResult{ID: id, Listing: c.refresh(ctx)}, nil
}

func (c *AdminCoordinator) UpdateHotel(ctx context.Context, token, id string, f HotelForm) (AdminResult, error) {
	if err := requireID(id); err != nil {
		return AdminResult{}, err
	}
	if err := c.hotels.UpdateHotel(ctx, token, id, ParseHotelForm(f)); err != nil {
		return AdminResult{}, backendError("update hotel", err)
	}
	c.invalidate(ctx, id)
	log.Info().Str("hotel_id", id).Msg("hotel updated")
	return AdminResult{ID: id, Listing: c.refresh(ctx)}, nil
}

func (c *AdminCoordinator) DeleteHotel(ctx context.Context, token, id string) (AdminResult, error) {
	if err := requireID(id); err != nil {
		return AdminResult{}, err
	}
	if err := c.hotels.DeleteHotel(ctx, token, id); err != nil {
		return AdminResult{}, backendError("delete hotel", err)
	}
	c.invalidate(ctx, id)
	log.Info().Str("hotel_id", id).Msg("hotel deleted")
	return AdminResult{ID: id, Listing: c.refresh(ctx)}, nil
}

func (c *AdminCoordinator) invalidate(ctx context.Context, id string) {
	if c.queries != nil {
		c.queries.Invalidate(ctx, id)
	}
}

func (c *AdminCoordinator) refresh(ctx context.Context) []domain.HotelSummary {
	if c.listing == nil {
		return nil
	}
	out, err := c.listing.Search(ctx, MatchAll, 0, DefaultPageSize)
	if err != nil {
		log.Warn().Err(err).Msg("listing refresh after mutation failed")
		return nil
	}
	return out
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &domain.ValidationError{Field: "id", Reason: "required"}
	}
	return nil
}
