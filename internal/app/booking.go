package app

import (
	"context"
	"strings"
	"time"

	"booking_front/internal/domain"
)

const dateLayout = "2006-01-02"

type BookingService struct {
	hotels domain.HotelsAPI
}

func NewBookingService(h domain.HotelsAPI) *BookingService {
	return &BookingService{hotels: h}
}

// Book reserves hotelID for the signed-in user. Without a session nothing is sent.
func (s *BookingService) Book(ctx context.Context, id Identity, hotelID, start, end string) (string, error) {
	cur, ok := id.Current()
	if !ok {
		return "", domain.ErrMissingIdentity
	}
	hotelID = strings.TrimSpace(hotelID)
	if hotelID == "" {
		return "", &domain.ValidationError{Field: "hotel_id", Reason: "required"}
	}
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return "", &domain.ValidationError{Field: "start_date", Reason: "expected YYYY-MM-DD"}
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return "", &domain.ValidationError{Field: "end_date", Reason: "expected YYYY-MM-DD"}
	}
	if !to.After(from) {
		return "", &domain.ValidationError{Field: "end_date", Reason: "must be after start_date"}
	}

	resID, err := s.hotels.CreateReservation(ctx, cur.Token, domain.ReservationRequest{
		HotelID:   hotelID,
		UserID:    cur.UserID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return "", backendError("reservation", err)
	}
	return resID, nil
}
