package domain

import (
	"context"
	"time"
)

// SessionRepository persists sessions by browser session id.
type SessionRepository interface {
	Save(ctx context.Context, id string, s Session, ttl time.Duration) error
	// Load returns ok=false when the id is unknown or expired.
	Load(ctx context.Context, id string) (s Session, ok bool, err error)
	Delete(ctx context.Context, id string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type UsersAPI interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Register(ctx context.Context, username, password string) error
}

// HotelsAPI talks to the hotel/reservation service. An empty token means the
// request goes out without an Authorization header.
type HotelsAPI interface {
	GetHotel(ctx context.Context, token, id string) (HotelRecord, error)
	CreateHotel(ctx context.Context, token string, p HotelPayload) (string, error)
	UpdateHotel(ctx context.Context, token, id string, p HotelPayload) error
	DeleteHotel(ctx context.Context, token, id string) error
	CreateReservation(ctx context.Context, token string, r ReservationRequest) (string, error)
	ListUserReservations(ctx context.Context, token, userID string) ([]Reservation, error)
}

type SearchAPI interface {
	Search(ctx context.Context, q SearchQuery) ([]IndexRecord, error)
}

type SearchQuery struct {
	Q      string
	Offset int
	Limit  int
}
