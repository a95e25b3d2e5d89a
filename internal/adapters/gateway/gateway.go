package gateway

import "fmt"

type Endpoints struct {
	Users  string
	Hotels string
	Search string
}

// Gateway bundles the three backend clients.
type Gateway struct {
	Users  *Users
	Hotels *Hotels
	Search *Search
}

func New(e Endpoints, o Options) (*Gateway, error) {
	u, err := NewUsers(e.Users, o)
	if err != nil {
		return nil, fmt.Errorf("users client: %w", err)
	}
	h, err := NewHotels(e.Hotels, o)
	if err != nil {
		return nil, fmt.Errorf("hotels client: %w", err)
	}
	s, err := NewSearch(e.Search, o)
	if err != nil {
		return nil, fmt.Errorf("search client: %w", err)
	}
	return &Gateway{Users: u, Hotels: h, Search: s}, nil
}
