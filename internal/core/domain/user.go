package domain

import (
	"errors"
	"time"
)

// GenderUnknown is assigned to newly registered users.
const GenderUnknown = "unknown"

var (
	ErrDuplicateEmail      = errors.New("this email address is already registered")
	ErrInvalidCredentials  = errors.New("email address or password is incorrect")
	ErrUserNotFound        = errors.New("user not found")
	ErrMissingRegistration = errors.New("email, password and name are required")
	ErrNotAuthenticated    = errors.New("login required")
)

// User is the session-shaped view of a shopper. It never carries a password.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Birthday  string    `json:"birthday,omitempty"` // YYYY-MM-DD
	Age       *int      `json:"age,omitempty"`
	Gender    string    `json:"gender,omitempty"`
}

// StoredUser is the roster entry. The password is kept verbatim; this is a
// demo roster and must never hold real credentials.
type StoredUser struct {
	User
	Password string `json:"password"`
}

// Attributes is a partial demographic update; nil fields are left untouched.
type Attributes struct {
	Birthday *string
	Age      *int
	Gender   *string
}

// Apply merges the non-nil attributes into u.
func (a Attributes) Apply(u User) User {
	if a.Birthday != nil {
		u.Birthday = *a.Birthday
	}
	if a.Age != nil {
		age := *a.Age
		u.Age = &age
	}
	if a.Gender != nil {
		u.Gender = *a.Gender
	}
	return u
}

// Clone returns a copy that shares no pointers with u.
func (u User) Clone() User {
	if u.Age != nil {
		age := *u.Age
		u.Age = &age
	}
	return u
}
