package domain

import (
	"encoding/json"
	"math"
)

// HotelRecord is the canonical hotel as stored by the hotel service.
type HotelRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Rating      float64  `json:"rating"`
	Amenities   []string `json:"amenities"`
	Description []string `json:"descripcion"`
}

// IndexRecord is a hotel as returned by the search service. Every field may
// arrive either as a scalar or as a sequence.
type IndexRecord struct {
	ID          Flex `json:"id"`
	Name        Flex `json:"name"`
	Address     Flex `json:"address"`
	City        Flex `json:"city"`
	State       Flex `json:"state"`
	Rating      Flex `json:"rating"`
	Amenities   Flex `json:"amenities"`
	Descripcion Flex `json:"descripcion"`
	Description Flex `json:"description"`
}

// HotelSummary is the flattened listing row built from an IndexRecord.
type HotelSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Rating      float64 `json:"rating"`
	Amenities   string  `json:"amenities"`
	Description string  `json:"description"`
}

// HotelPayload is the body for hotel create/update requests.
type HotelPayload struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Amenities   []string `json:"amenities"`
	Description []string `json:"descripcion"`
	Rating      Rating   `json:"rating"`
}

// Rating encodes non-finite values as the string "NaN" so the hotel service
// rejects them instead of the client coercing them to a number.
type Rating float64

func (r Rating) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(f)
}

func (r *Rating) UnmarshalJSON(b []byte) error {
	var f Flex
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	if f.Absent() {
		*r = 0
		return nil
	}
	v, ok := f.Float()
	if !ok {
		*r = Rating(math.NaN())
		return nil
	}
	*r = Rating(v)
	return nil
}
