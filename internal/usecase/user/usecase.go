package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domain "user-table-service/internal/domain/user"
	pkgerrors "user-table-service/pkg/errors"
	"user-table-service/pkg/logger"
)

// NotFoundMessage is the client-facing message for unknown user IDs.
const NotFoundMessage = "User not found."

// Table defines the storage operations the use case needs.
// The in-memory table implements it; a persistent store can replace it later.
type Table interface {
	List(ctx context.Context) ([]domain.User, error)                              // All records in insertion order
	Create(ctx context.Context, name, email string) (*domain.User, error)         // Append with a generated ID
	UpdateByID(ctx context.Context, id, name, email string) (*domain.User, error) // Replace in place
	DeleteByID(ctx context.Context, id string) error                              // Remove by ID
}

// UserUsecase implements the business logic for user management operations.
type UserUsecase struct {
	table Table       // Backing user table
	log   *zap.Logger // Logger for structured logging
}

var _ Usecase = (*UserUsecase)(nil)

// New creates a new instance of UserUsecase backed by the given table.
func New(t Table, log *zap.Logger) *UserUsecase {
	return &UserUsecase{table: t, log: log}
}

// ListUsers returns every user currently in the table.
func (uc *UserUsecase) ListUsers(ctx context.Context, _ ListUsersRequest) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	domainUsers, err := uc.table.List(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to list users", err)
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = User{
			ID:    du.ID,
			Name:  du.Name,
			Email: du.Email,
		}
	}

	log.Debug("listed users", zap.Int("count", len(users)))
	return &ListUsersResponse{Users: users}, nil
}

// CreateUser appends a new user. Name and email are stored as given.
func (uc *UserUsecase) CreateUser(ctx context.Context, in CreateUserRequest) (*UserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	u, err := uc.table.Create(ctx, in.Name, in.Email)
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to create user", err)
	}

	log.Info("user created", zap.String("id", u.ID))
	return toResponse(u), nil
}

// UpdateUser replaces the name and email of an existing user, keeping its ID.
func (uc *UserUsecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("updating user", zap.String("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	u, err := uc.table.UpdateByID(ctx, in.ID, in.Name, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn("user not found", zap.String("id", in.ID))
			return nil, pkgerrors.NewNotFoundError("user", NotFoundMessage)
		}
		log.Error("failed to update user", zap.String("id", in.ID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to update user", err)
	}

	return toResponse(u), nil
}

// DeleteUser removes a user by ID.
func (uc *UserUsecase) DeleteUser(ctx context.Context, in DeleteUserRequest) error {
	log := logger.WithContext(ctx, uc.log)
	log.Info("deleting user", zap.String("id", in.ID))

	if err := uc.table.DeleteByID(ctx, in.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn("user not found", zap.String("id", in.ID))
			return pkgerrors.NewNotFoundError("user", NotFoundMessage)
		}
		log.Error("failed to delete user", zap.String("id", in.ID), zap.Error(err))
		return pkgerrors.NewInternalError("failed to delete user", err)
	}

	return nil
}

func toResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
