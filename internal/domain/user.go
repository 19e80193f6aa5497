package domain

import "time"

// Role enumerates the two access levels in the system.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleCitizen || r == RoleAdmin
}

// User is the domain model for registered accounts. Emails are stored
// lowercased; only the bcrypt hash of the password is ever persisted.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
