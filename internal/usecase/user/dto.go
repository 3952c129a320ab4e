package user

// ListUsersRequest represents the request payload for listing users.
// Listing always returns the full table.
type ListUsersRequest struct{}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// CreateUserRequest represents the request payload for creating a new user.
// Absent fields arrive as empty strings and are stored as such.
type CreateUserRequest struct {
	Name  string
	Email string
}

// UpdateUserRequest represents the request payload for replacing an existing user.
type UpdateUserRequest struct {
	ID    string
	Name  string
	Email string
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID string
}

// UserResponse is returned by create and update.
type UserResponse struct {
	ID    string
	Name  string
	Email string
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID    string
	Name  string
	Email string
}
