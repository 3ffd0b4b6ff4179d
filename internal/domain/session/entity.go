// internal/domain/session/entity.go
package session

// Role is the account role carried by the backend token
type Role string

// Known roles
const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Session is the authenticated identity for this client. Exactly one session
// is active at a time.
type Session struct {
	Token  string
	UserID string
	Role   Role
	Email  string
}

// IsAdmin reports whether the session belongs to an admin account
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
