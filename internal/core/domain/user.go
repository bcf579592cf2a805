package domain

import (
	"errors"
	"time"
)

// Role is the coarse privilege tier attached to a user record.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrForbidden = errors.New("not permitted on this resource")
var ErrEmailTaken = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")

// User models an account in the system. PasswordHash never crosses the API
// boundary: it is excluded from JSON and from every response shape.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanMutate reports whether u may mutate the record identified by targetID:
// admins always, everyone else only their own record. The check is string
// equality on ids, distinct from the role guard applied at routing time.
func (u *User) CanMutate(targetID string) bool {
	return u.Role == RoleAdmin || u.ID == targetID
}
