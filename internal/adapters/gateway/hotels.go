package gateway

import (
	"context"
	"net/http"
	"net/url"

	"booking_front/internal/domain"
)

// Hotels is the client for the hotel/reservation service.
type Hotels struct{ c *Client }

func NewHotels(base string, o Options) (*Hotels, error) {
	c, err := NewClient("hotels", base, o)
	if err != nil {
		return nil, err
	}
	return &Hotels{c: c}, nil
}

type idResponse struct {
	ID domain.Flex `json:"id"`
}

func (r idResponse) value() string {
	id, _ := r.ID.First()
	return id
}

func (h *Hotels) GetHotel(ctx context.Context, token, id string) (domain.HotelRecord, error) {
	var out domain.HotelRecord
	err := h.c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/hotels/" + url.PathEscape(id),
		endpoint: "/hotels/{id}",
		token:    token,
	}, &out)
	return out, err
}

func (h *Hotels) CreateHotel(ctx context.Context, token string, p domain.HotelPayload) (string, error) {
	var out idResponse
	err := h.c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/hotels",
		endpoint: "/hotels",
		token:    token,
		body:     p,
	}, &out)
	return out.value(), err
}

func (h *Hotels) UpdateHotel(ctx context.Context, token, id string, p domain.HotelPayload) error {
	return h.c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/hotels/" + url.PathEscape(id),
		endpoint: "/hotels/{id}",
		token:    token,
		body:     p,
	}, nil)
}

func (h *Hotels) DeleteHotel(ctx context.Context, token, id string) error {
	return h.c.do(ctx, request{
		method:   http.MethodDelete,
		path:     "/hotels/" + url.PathEscape(id),
		endpoint: "/hotels/{id}",
		token:    token,
	}, nil)
}

func (h *Hotels) CreateReservation(ctx context.Context, token string, r domain.ReservationRequest) (string, error) {
	var out idResponse
	err := h.c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/reservations",
		endpoint: "/reservations",
		token:    token,
		body:     r,
	}, &out)
	return out.value(), err
}

func (h *Hotels) ListUserReservations(ctx context.Context, token, userID string) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := h.c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/users/" + url.PathEscape(userID) + "/reservations",
		endpoint: "/users/{id}/reservations",
		token:    token,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Reservation{}
	}
	return out, nil
}
