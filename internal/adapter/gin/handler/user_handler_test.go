package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	usecase "user-table-service/internal/usecase/user"
	pkgerrors "user-table-service/pkg/errors"
)

// MockUserUsecase is a mock implementation of user.Usecase
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, req usecase.ListUsersRequest) (*usecase.ListUsersResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ListUsersResponse), args.Error(1)
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, req usecase.CreateUserRequest) (*usecase.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.UserResponse), args.Error(1)
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, req usecase.UpdateUserRequest) (*usecase.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.UserResponse), args.Error(1)
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, req usecase.DeleteUserRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func setupTest(t *testing.T) (*gin.Engine, *UserHandler, *MockUserUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockUserUsecase)
	handler := NewUserHandler(mockUsecase, zaptest.NewLogger(t))

	r := gin.New()
	return r, handler, mockUsecase
}

func notFound() error {
	return pkgerrors.NewNotFoundError("user", usecase.NotFoundMessage)
}

func TestListUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/users", handler.ListUsers)

		mockUsecase.On("ListUsers", mock.Anything, usecase.ListUsersRequest{}).Return(&usecase.ListUsersResponse{
			Users: []usecase.User{
				{ID: "1", Name: "User 1", Email: "u1@x.com"},
				{ID: "2", Name: "User 2", Email: "u2@x.com"},
			},
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[
			{"id":"1","name":"User 1","email":"u1@x.com"},
			{"id":"2","name":"User 2","email":"u2@x.com"}
		]`, w.Body.String())
	})

	t.Run("Empty table renders an empty array", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/users", handler.ListUsers)

		mockUsecase.On("ListUsers", mock.Anything, mock.Anything).Return(&usecase.ListUsersResponse{Users: []usecase.User{}}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("Query parameters are ignored", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/users", handler.ListUsers)

		mockUsecase.On("ListUsers", mock.Anything, usecase.ListUsersRequest{}).Return(&usecase.ListUsersResponse{Users: []usecase.User{}}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?page=2&perPage=10", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Usecase Error", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/users", handler.ListUsers)

		mockUsecase.On("ListUsers", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		reqBody := CreateUserRequest{Name: "Ana", Email: "a@x.com"}
		jsonBody, _ := json.Marshal(reqBody)

		mockUsecase.On("CreateUser", mock.Anything, usecase.CreateUserRequest{Name: "Ana", Email: "a@x.com"}).
			Return(&usecase.UserResponse{ID: "generated", Name: "Ana", Email: "a@x.com"}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, UserResponse{ID: "generated", Name: "Ana", Email: "a@x.com"}, resp)
	})

	t.Run("Missing fields become empty strings", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		mockUsecase.On("CreateUser", mock.Anything, usecase.CreateUserRequest{Name: "Ana"}).
			Return(&usecase.UserResponse{ID: "generated", Name: "Ana"}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"name":"Ana"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"generated","name":"Ana","email":""}`, w.Body.String())
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Empty body", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		mockUsecase.On("CreateUser", mock.Anything, usecase.CreateUserRequest{}).
			Return(&usecase.UserResponse{ID: "generated"}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Invalid Request Body", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString("invalid json"))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, InvalidBodyMessage, resp.Error)
		mockUsecase.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Usecase Error", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		mockUsecase.On("CreateUser", mock.Anything, mock.Anything).Return(nil, errors.New("internal error"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"name":"x","email":"y"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PUT("/users/:id", handler.UpdateUser)

		mockUsecase.On("UpdateUser", mock.Anything, usecase.UpdateUserRequest{ID: "abc", Name: "Ana", Email: "new@x.com"}).
			Return(&usecase.UserResponse{ID: "abc", Name: "Ana", Email: "new@x.com"}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/users/abc", bytes.NewBufferString(`{"name":"Ana","email":"new@x.com"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"abc","name":"Ana","email":"new@x.com"}`, w.Body.String())
	})

	t.Run("Not Found", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PUT("/users/:id", handler.UpdateUser)

		mockUsecase.On("UpdateUser", mock.Anything, mock.Anything).Return(nil, notFound())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/users/missing", bytes.NewBufferString(`{"name":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found."}`, w.Body.String())
	})

	t.Run("Invalid Request Body", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PUT("/users/:id", handler.UpdateUser)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/users/abc", bytes.NewBufferString(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUsecase.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.DELETE("/users/:id", handler.DeleteUser)

		mockUsecase.On("DeleteUser", mock.Anything, usecase.DeleteUserRequest{ID: "abc"}).Return(nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/abc", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Not Found", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.DELETE("/users/:id", handler.DeleteUser)

		mockUsecase.On("DeleteUser", mock.Anything, usecase.DeleteUserRequest{ID: "missing"}).Return(notFound())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/missing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found."}`, w.Body.String())
	})
}
