package models

import "time"

// Role is the authorization level assigned to a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// It is never serialized to JSON and never contains plaintext.
	PasswordHash string `json:"-"`

	// Active disables authentication when false. Defaults to true.
	Active bool `json:"active"`

	// Role is the authorization level. Defaults to RoleUser.
	Role Role `json:"role"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserPage is one page of a paginated user listing.
type UserPage struct {
	Users      []User `json:"users"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Total      int64  `json:"total"`
}
