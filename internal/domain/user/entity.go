package user

import "errors"

// ErrNotFound is returned by a Table when no record carries the requested ID.
var ErrNotFound = errors.New("user not found")

// User represents a user entity in the system.
type User struct {
	ID    string `json:"id"`    // ID is generated on creation and never changes
	Name  string `json:"name"`  // Name is free-form text
	Email string `json:"email"` // Email is free-form text, not required to be unique
}
