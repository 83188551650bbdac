package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/cart-approval-api/internal/platform/logger"
	"github.com/ridloal/cart-approval-api/internal/platform/web"
	"github.com/ridloal/cart-approval-api/internal/product/domain"
	"github.com/ridloal/cart-approval-api/internal/product/repository"
	"github.com/ridloal/cart-approval-api/internal/product/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(ps service.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

// RegisterRoutes wires product endpoints. Reads are public; writes are
// admin-gated by the middleware passed in.
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup, adminOnly ...gin.HandlerFunc) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.GET("/categories", h.ListCategories)
		productRoutes.GET("/:id", h.GetProduct)

		adminRoutes := productRoutes.Group("", adminOnly...)
		adminRoutes.POST("", h.CreateProduct)
		adminRoutes.PUT("/:id", h.UpdateProduct)
		adminRoutes.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	var query domain.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		web.BadRequest(c, err)
		return
	}

	list, err := h.productService.ListProducts(c.Request.Context(), query)
	if err != nil {
		logger.Error("ListProducts: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}
	web.OKPaginated(c, list.Products, web.Pagination{
		Current: list.Page,
		Pages:   list.Pages,
		Total:   list.Total,
	})
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.ListCategories(c.Request.Context())
	if err != nil {
		logger.Error("ListCategories: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	web.OK(c, categories)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			web.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("GetProduct: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}
	web.OK(c, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		logger.Error("CreateProduct: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Failed to create product")
		return
	}
	web.Created(c, "Product created successfully", product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			web.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("UpdateProduct: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Failed to update product")
		return
	}
	web.OKWithMessage(c, "Product updated successfully", product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			web.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, repository.ErrProductReferenced) {
			web.Fail(c, http.StatusConflict, err.Error())
			return
		}
		logger.Error("DeleteProduct: service error", err)
		web.Fail(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	web.OKWithMessage(c, "Product deleted successfully", nil)
}
