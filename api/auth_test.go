package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *MockAuthUseCase) Verify(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func TestAuthHandler_register_Success(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/register", bytes.NewBufferString(`{"username":"alice","email":"alice@example.com","password":"longenough"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	user := &domain.User{ID: 1, Username: "alice", Email: "alice@example.com"}
	mockService.On("Register", c.Request.Context(), auth.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "longenough",
	}).Return(user, nil).Once()

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "User created successfully")
	mockService.AssertExpectations(t)
}

func TestAuthHandler_register_Duplicate(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/register", bytes.NewBufferString(`{"username":"alice","email":"alice@example.com","password":"longenough"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), mock.Anything).Return(nil, &auth.DuplicateUserError{Field: "email"}).Once()

	handler.register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"email"`)
}

func TestAuthHandler_register_WeakPassword(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/register", bytes.NewBufferString(`{"username":"alice","email":"alice@example.com","password":"short"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), mock.Anything).Return(nil, domain.ErrWeakPassword).Once()

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least 8 characters")
}

func TestAuthHandler_register_MissingFields(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/register", bytes.NewBufferString(`{"username":"alice"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register")
}

func TestAuthHandler_login_Success(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/login", bytes.NewBufferString(`{"username":"alice","password":"longenough"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	user := &domain.User{ID: 1, Username: "alice", Email: "alice@example.com"}
	mockService.On("Login", c.Request.Context(), "alice", "longenough").Return("signed-token", user, nil).Once()

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed-token")
	mockService.AssertExpectations(t)
}

func TestAuthHandler_login_InvalidCredentials(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/login", bytes.NewBufferString(`{"username":"alice","password":"wrong"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Login", c.Request.Context(), "alice", "wrong").Return("", nil, domain.ErrInvalidCredentials).Once()

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
}
