package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ridloal/cart-approval-api/internal/user/domain"
	"github.com/ridloal/cart-approval-api/internal/user/service"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*domain.AuthResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*domain.AuthResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func setupRouter(users service.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(users), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"userId": user.ID})
	})
	router.GET("/admin", RequireAuth(users), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	t.Run("Missing header", func(t *testing.T) {
		mockSvc := new(mockUserService)
		router := setupRouter(mockSvc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "No token provided")
		mockSvc.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("Header without Bearer prefix", func(t *testing.T) {
		mockSvc := new(mockUserService)
		router := setupRouter(mockSvc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "some-raw-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockSvc.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("Invalid token", func(t *testing.T) {
		mockSvc := new(mockUserService)
		router := setupRouter(mockSvc)

		mockSvc.On("Authenticate", mock.Anything, "bad-token").
			Return(nil, service.ErrInvalidToken).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Valid token attaches user", func(t *testing.T) {
		mockSvc := new(mockUserService)
		router := setupRouter(mockSvc)

		mockSvc.On("Authenticate", mock.Anything, "good-token").
			Return(&domain.User{ID: "user-1", Role: domain.RoleCustomer}, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("Customer role is rejected", func(t *testing.T) {
		mockSvc := new(mockUserService)
		router := setupRouter(mockSvc)

		mockSvc.On("Authenticate", mock.Anything, "customer-token").
			Return(&domain.User{ID: "user-1", Role: domain.RoleCustomer}, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer customer-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Admin role required")
	})

	t.Run("Admin role passes", func(t *testing.T) {
		mockSvc := new(mockUserService)
		router := setupRouter(mockSvc)

		mockSvc.On("Authenticate", mock.Anything, "admin-token").
			Return(&domain.User{ID: "admin-1", Role: domain.RoleAdmin}, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
