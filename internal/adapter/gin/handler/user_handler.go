package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-table-service/internal/usecase/user"
	pkgerrors "user-table-service/pkg/errors"
	"user-table-service/pkg/logger"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
// Missing fields decode to empty strings.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest represents the HTTP request body for updating a user
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// InvalidBodyMessage is returned when the request body is not valid JSON
const InvalidBodyMessage = "Invalid request body."

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{})
	if err != nil {
		h.logger(c).Error("ListUsers failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		}
	}

	c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !h.bindBody(c, &req) {
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.logger(c).Error("CreateUser failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(resp))
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var req UpdateUserRequest
	if !h.bindBody(c, &req) {
		return
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(resp))
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	if err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id}); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// bindBody decodes a JSON body into dst. An empty body counts as {}.
// It writes a 400 and returns false when the body is malformed.
func (h *UserHandler) bindBody(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	h.logger(c).Warn("invalid request body", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   InvalidBodyMessage,
		Message: err.Error(),
	})
	return false
}

// handleError converts usecase errors to HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var notFound *pkgerrors.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(notFound.HTTPStatus(), ErrorResponse{Error: notFound.Error()})
		return
	}

	var validation *pkgerrors.ValidationError
	if errors.As(err, &validation) {
		c.JSON(validation.HTTPStatus(), ErrorResponse{
			Error:   "invalid_input",
			Message: validation.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

func (h *UserHandler) logger(c *gin.Context) *zap.Logger {
	return logger.WithContext(c.Request.Context(), h.log)
}

func toUserResponse(u *user.UserResponse) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
