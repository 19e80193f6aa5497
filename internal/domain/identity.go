package domain

// Identity is the authenticated caller as extracted from a verified token.
// It is built from claims alone; role changes therefore take effect only
// after re-login.
type Identity struct {
	ID    string
	Role  Role
	Email string
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
