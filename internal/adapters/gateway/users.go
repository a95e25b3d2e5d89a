package gateway

import (
	"context"
	"net/http"

	"booking_front/internal/domain"
)

// Users is the client for the user/auth service.
type Users struct{ c *Client }

func NewUsers(base string, o Options) (*Users, error) {
	c, err := NewClient("users", base, o)
	if err != nil {
		return nil, err
	}
	return &Users{c: c}, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID   domain.Flex `json:"user_id"` // numeric on the wire
	Username string      `json:"username"`
	Token    string      `json:"token"`
	Tipo     string      `json:"tipo"`
}

// Login posts the credentials. Role is left empty when the service does not send tipo.
func (u *Users) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	var resp loginResponse
	err := u.c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/login",
		endpoint: "/login",
		body:     credentials{Username: username, Password: password},
	}, &resp)
	if err != nil {
		return domain.LoginResult{}, err
	}
	res := domain.LoginResult{Token: resp.Token, Username: resp.Username}
	if id, ok := resp.UserID.First(); ok {
		res.UserID = id
	}
	if resp.Tipo != "" {
		res.Role = domain.ParseRole(resp.Tipo)
	}
	return res, nil
}

// Register creates a user. A taken username comes back as a 409 StatusError.
func (u *Users) Register(ctx context.Context, username, password string) error {
	return u.c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/users",
		endpoint: "/users",
		body:     credentials{Username: username, Password: password},
	}, nil)
}
