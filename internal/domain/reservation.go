package domain

type Reservation struct {
	ID        string `json:"id"`
	HotelID   string `json:"hotel_id"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status,omitempty"`
	HotelName string `json:"hotel_name"` // derived, filled by the aggregator
}

type ReservationRequest struct {
	HotelID   string `json:"hotel_id"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
