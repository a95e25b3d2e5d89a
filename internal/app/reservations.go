package app

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"booking_front/internal/adapters/observability"
	"booking_front/internal/domain"
)

// HotelNameUnavailable replaces the hotel name when its lookup fails.
const HotelNameUnavailable = "hotel unavailable"

// HotelLookup resolves canonical hotel records.
type HotelLookup interface {
	GetHotel(ctx context.Context, token, id string) (domain.HotelRecord, error)
}

// Identity exposes the current session.
type Identity interface {
	Current() (domain.Session, bool)
}

type ReservationAggregator struct {
	hotels domain.HotelsAPI
	lookup HotelLookup
	limit  int
}

// NewReservationAggregator runs at most limit hotel lookups at a time.
func NewReservationAggregator(h domain.HotelsAPI, lookup HotelLookup, limit int) *ReservationAggregator {
	if lookup == nil {
		lookup = h
	}
	if limit <= 0 {
		limit = 8
	}
	return &ReservationAggregator{hotels: h, lookup: lookup, limit: limit}
}

// ListWithHotelNames loads the user's reservations and fills HotelName on each.
// A failed hotel lookup only affects its own row. Output order is list order.
func (a *ReservationAggregator) ListWithHotelNames(ctx context.Context, userID, token string) ([]domain.Reservation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrMissingIdentity
	}
	rs, err := a.hotels.ListUserReservations(ctx, token, userID)
	if err != nil {
		return nil, &domain.LoadError{Op: "reservations", Err: err}
	}

	out := make([]domain.Reservation, len(rs))
	copy(out, rs)

	var g errgroup.Group
	g.SetLimit(a.limit)
	for i := range out {
		g.Go(func() error {
			out[i].HotelName = a.hotelName(ctx, token, out[i])
			return nil
		})
	}
	_ = g.Wait() // lookups never fail the group
	return out, nil
}

// ForSession runs ListWithHotelNames for the current session.
func (a *ReservationAggregator) ForSession(ctx context.Context, id Identity) ([]domain.Reservation, error) {
	cur, ok := id.Current()
	if !ok {
		return nil, domain.ErrMissingIdentity
	}
	return a.ListWithHotelNames(ctx, cur.UserID, cur.Token)
}

func (a *ReservationAggregator) hotelName(ctx context.Context, token string, r domain.Reservation) string {
	var err error
	if strings.TrimSpace(r.HotelID) == "" {
		err = errors.New("reservation has no hotel id")
	} else {
		var h domain.HotelRecord
		if h, err = a.lookup.GetHotel(ctx, token, r.HotelID); err == nil {
			if h.Name == "" {
				return HotelNameUnavailable
			}
			return h.Name
		}
	}
	lf := &domain.LookupFailure{Resource: "hotel", ID: r.HotelID, Err: err}
	observability.ObserveLookupFailure("hotel", err)
	log.Warn().Err(lf).Str("reservation_id", r.ID).Msg("hotel name lookup failed")
	return HotelNameUnavailable
}
