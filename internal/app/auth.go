package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"booking_front/internal/domain"
	"booking_front/internal/session"
)

// SessionWriter is the part of the session store that login and logout touch.
type SessionWriter interface {
	Identity
	Login(ctx context.Context, token, userID string, role domain.Role) error
	Logout(ctx context.Context) error
}

type AuthService struct {
	users domain.UsersAPI
}

func NewAuthService(u domain.UsersAPI) *AuthService {
	return &AuthService{users: u}
}

// Login authenticates against the users service and starts the session.
// user id and role missing from the response are taken from the token claims.
func (s *AuthService) Login(ctx context.Context, st SessionWriter, username, password string) (domain.Session, error) {
	if err := requireCredentials(username, password); err != nil {
		return domain.Session{}, err
	}
	res, err := s.users.Login(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNotFound):
			return domain.Session{}, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
		case errors.Is(err, domain.ErrBadRequest):
			return domain.Session{}, &domain.ValidationError{Field: "credentials", Err: err}
		}
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	if res.Token == "" {
		return domain.Session{}, errors.New("login: response carried no token")
	}

	claims := session.ReadClaims(res.Token)
	userID := res.UserID
	if userID == "" || userID == "0" {
		userID = claims.UserID
	}
	role := res.Role
	if role == "" {
		role = domain.ParseRole(claims.Role)
	}
	if role == domain.RoleGuest {
		role = domain.RoleCustomer
	}
	if userID == "" {
		return domain.Session{}, errors.New("login: no user id in response or token")
	}

	if err := st.Login(ctx, res.Token, userID, role); err != nil {
		return domain.Session{}, err
	}
	cur, _ := st.Current()
	return cur, nil
}

// Register creates an account. A taken username is a ValidationError wrapping ErrUsernameTaken.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if err := requireCredentials(username, password); err != nil {
		return err
	}
	err := s.users.Register(ctx, username, password)
	switch {
	case err == nil:
		log.Info().Str("username", username).Msg("user registered")
		return nil
	case errors.Is(err, domain.ErrConflict):
		return &domain.ValidationError{Field: "username", Err: fmt.Errorf("%w: %w", domain.ErrUsernameTaken, err)}
	}
	return backendError("registration", err)
}

func (s *AuthService) Logout(ctx context.Context, st SessionWriter) error {
	return st.Logout(ctx)
}

func requireCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return &domain.ValidationError{Field: "username", Reason: "required"}
	}
	if password == "" {
		return &domain.ValidationError{Field: "password", Reason: "required"}
	}
	return nil
}

// backendError turns a 400 from a backend into a ValidationError and wraps
// everything else with the operation name.
func backendError(op string, err error) error {
	if errors.Is(err, domain.ErrBadRequest) {
		return &domain.ValidationError{Field: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
