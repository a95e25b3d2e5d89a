package domain

import "strings"

type Role string

const (
	RoleGuest         Role = "guest"
	RoleCustomer      Role = "customer"
	RoleAdministrator Role = "administrator"
)

// ParseRole accepts both the users service vocabulary (cliente|administrador)
// and the canonical names. Unknown values fall back to customer.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "administrador", "administrator", "admin":
		return RoleAdministrator
	case "guest", "":
		return RoleGuest
	default:
		return RoleCustomer
	}
}

// Session is the authenticated identity for one browser session.
// Token and UserID are always both set or both empty.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

func (s Session) Authenticated() bool { return s.Token != "" }

type LoginResult struct {
	Token    string
	UserID   string
	Username string
	Role     Role
}
