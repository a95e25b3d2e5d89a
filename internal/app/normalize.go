package app

import (
	"strings"

	"booking_front/internal/domain"
)

// Placeholders shown when the index has no value for a field.
const (
	NotAvailable        = "not available"
	LocationUnavailable = "location unavailable"
)

// Ratings are reported on a 0 to 5 scale.
const (
	MinRating = 0
	MaxRating = 5
)

// Normalize collapses an index record into a flat summary. It never fails:
// every field independently accepts a scalar, a sequence, or nothing.
func Normalize(r domain.IndexRecord) domain.HotelSummary {
	id, _ := r.ID.First()
	rating, _ := r.Rating.Float()
	rating = min(max(rating, MinRating), MaxRating)

	desc := r.Descripcion
	if desc.Absent() {
		desc = r.Description
	}

	return domain.HotelSummary{
		ID:          id,
		Name:        firstOr(r.Name, NotAvailable),
		Address:     firstOr(r.Address, LocationUnavailable),
		City:        firstOr(r.City, LocationUnavailable),
		State:       firstOr(r.State, ""),
		Rating:      rating,
		Amenities:   joinedOr(r.Amenities, NotAvailable),
		Description: firstOr(desc, NotAvailable),
	}
}

func NormalizeAll(rs []domain.IndexRecord) []domain.HotelSummary {
	out := make([]domain.HotelSummary, 0, len(rs))
	for _, r := range rs {
		out = append(out, Normalize(r))
	}
	return out
}

func firstOr(f domain.Flex, def string) string {
	if s, ok := f.First(); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}

// joinedOr joins a sequence with ", "; a scalar passes through.
func joinedOr(f domain.Flex, def string) string {
	if !f.IsList() {
		return firstOr(f, def)
	}
	parts := f.Strings()
	if len(parts) == 0 {
		return def
	}
	return strings.Join(parts, ", ")
}
