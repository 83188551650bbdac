package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/cart-approval-api/internal/platform/logger"
	"github.com/ridloal/cart-approval-api/internal/platform/web"
	"github.com/ridloal/cart-approval-api/internal/user/domain"
	"github.com/ridloal/cart-approval-api/internal/user/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(us service.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
		authRoutes.GET("/profile", RequireAuth(h.userService), h.Profile)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Register: bad request", err)
		web.BadRequest(c, err)
		return
	}

	resp, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			web.Fail(c, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, service.ErrInvalidUsername) {
			web.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("Register: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	web.Created(c, "User registered successfully", resp)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Login: bad request", err)
		web.BadRequest(c, err)
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserInactive) {
			web.Fail(c, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
			return
		}
		logger.Error("Login: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	web.OKWithMessage(c, "Login successful", resp)
}

func (h *UserHandler) Profile(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		web.Fail(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	web.OK(c, user)
}
