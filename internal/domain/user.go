package domain

import "time"

// Role enumerates account roles. The set is closed: anything outside
// these two values must never pass the role gate.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
)

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTechnician
}

// User models an administrator or field technician account.
type User struct {
	ID                int64
	FirstName         string
	LastName          string
	Email             string
	PasswordHash      string
	Role              Role
	RUT               *string
	PhoneNumber       *string
	ProfilePictureURL *string
	CreatedAt         time.Time
}

// FullName joins the display name fields.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
