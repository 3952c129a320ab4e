package user

import "context"

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
	CreateUser(ctx context.Context, in CreateUserRequest) (*UserResponse, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, in DeleteUserRequest) error
}
