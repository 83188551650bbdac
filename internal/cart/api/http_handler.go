package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/cart-approval-api/internal/cart/domain"
	"github.com/ridloal/cart-approval-api/internal/cart/repository"
	"github.com/ridloal/cart-approval-api/internal/cart/service"
	"github.com/ridloal/cart-approval-api/internal/platform/logger"
	"github.com/ridloal/cart-approval-api/internal/platform/web"
	productRepo "github.com/ridloal/cart-approval-api/internal/product/repository"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cs service.CartService) *CartHandler {
	return &CartHandler{cartService: cs}
}

// RegisterRoutes wires cart endpoints. Submission and single-cart reads are
// public; listing, review and stats are admin-gated by the middleware passed
// in.
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup, adminOnly ...gin.HandlerFunc) {
	cartRoutes := router.Group("/carts")
	{
		cartRoutes.POST("/submit", h.SubmitCart)
		cartRoutes.GET("/:id", h.GetCart)

		adminRoutes := cartRoutes.Group("", adminOnly...)
		adminRoutes.GET("", h.ListCarts)
		adminRoutes.GET("/admin/stats", h.GetStats)
		adminRoutes.PUT("/:id/review", h.ReviewCart)
	}
}

func (h *CartHandler) SubmitCart(c *gin.Context) {
	var req domain.SubmitCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("SubmitCart: bad request", err)
		web.BadRequest(c, err)
		return
	}

	cart, err := h.cartService.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			web.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, service.ErrProductUnavailable) || errors.Is(err, service.ErrInsufficientStock) {
			web.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("SubmitCart: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Error submitting cart")
		return
	}

	web.Created(c, "Cart submitted successfully for approval", cart)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			web.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("GetCart: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Error fetching cart")
		return
	}
	web.OK(c, cart)
}

func (h *CartHandler) ListCarts(c *gin.Context) {
	var query domain.ListCartsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		web.BadRequest(c, err)
		return
	}

	list, err := h.cartService.ListCarts(c.Request.Context(), query)
	if err != nil {
		logger.Error("ListCarts: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Error fetching carts")
		return
	}
	web.OKPaginated(c, list.Carts, web.Pagination{
		Current: list.Page,
		Pages:   list.Pages,
		Total:   list.Total,
	})
}

func (h *CartHandler) ReviewCart(c *gin.Context) {
	var req domain.ReviewCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("ReviewCart: bad request", err)
		web.BadRequest(c, err)
		return
	}

	cart, err := h.cartService.Review(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			web.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, repository.ErrCartAlreadyReviewed) {
			web.Fail(c, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, service.ErrInsufficientStock) {
			web.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("ReviewCart: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Error reviewing cart")
		return
	}

	web.OKWithMessage(c, fmt.Sprintf("Cart %s successfully", cart.Status), cart)
}

func (h *CartHandler) GetStats(c *gin.Context) {
	stats, err := h.cartService.GetStats(c.Request.Context())
	if err != nil {
		logger.Error("GetStats: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Error fetching cart statistics")
		return
	}
	web.OK(c, stats)
}
